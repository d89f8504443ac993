package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

const dashboardRecentActivities = 10 // entradas del widget de actividad

// DashboardUseCase genera el resumen de la tienda: conteos, alertas, ventas del día y del mes.
type DashboardUseCase struct {
	products     *ProductUseCase
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	billRepo     repository.BillRepository
	activityRepo repository.ActivityRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	products *ProductUseCase,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	billRepo repository.BillRepository,
	activityRepo repository.ActivityRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		products:     products,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		billRepo:     billRepo,
		activityRepo: activityRepo,
	}
}

// GetSummary construye el DashboardSummaryDTO a la fecha now.
// Las ventas del día y del mes se consultan en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, now time.Time) (*dto.DashboardSummaryDTO, error) {
	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type salesResult struct {
		total decimal.Decimal
		err   error
	}
	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)
	go func() {
		t, err := uc.billRepo.SalesTotal(ctx, todayStart, tomorrow)
		todayCh <- salesResult{t, err}
	}()
	go func() {
		t, err := uc.billRepo.SalesTotal(ctx, monthStart, tomorrow)
		monthCh <- salesResult{t, err}
	}()

	out := &dto.DashboardSummaryDTO{}
	var err error
	if out.ProductCount, err = uc.productRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("dashboard productos: %w", err)
	}
	if out.CustomerCount, err = uc.customerRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("dashboard clientes: %w", err)
	}
	if out.OutstandingDue, err = uc.customerRepo.TotalBalanceDue(ctx); err != nil {
		return nil, fmt.Errorf("dashboard saldos: %w", err)
	}
	if out.LowStock, err = uc.products.LowStock(ctx, nil); err != nil {
		return nil, fmt.Errorf("dashboard stock bajo: %w", err)
	}
	if out.ExpiringSoon, err = uc.products.ExpiringSoon(ctx, -1, now); err != nil {
		return nil, fmt.Errorf("dashboard vencimientos: %w", err)
	}
	acts, err := uc.activityRepo.ListRecent(ctx, dashboardRecentActivities)
	if err != nil {
		return nil, fmt.Errorf("dashboard actividad: %w", err)
	}
	out.RecentActivities = make([]dto.ActivityResponse, 0, len(acts))
	for _, a := range acts {
		out.RecentActivities = append(out.RecentActivities, dto.ActivityResponse{
			ID:        a.ID,
			Type:      a.Type,
			Message:   a.Message,
			CreatedAt: a.CreatedAt,
		})
	}

	today := <-todayCh
	month := <-monthCh
	if today.err != nil {
		return nil, fmt.Errorf("dashboard ventas hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard ventas mes: %w", month.err)
	}
	out.TodaySales = today.total
	out.MonthlySales = month.total
	return out, nil
}
