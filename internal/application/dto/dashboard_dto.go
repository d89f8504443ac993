package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	ProductCount     int                `json:"product_count"`
	CustomerCount    int                `json:"customer_count"`
	TodaySales       decimal.Decimal    `json:"today_sales"`
	MonthlySales     decimal.Decimal    `json:"monthly_sales"`
	OutstandingDue   decimal.Decimal    `json:"outstanding_due"` // saldo total de clientes a crédito
	LowStock         []ProductResponse  `json:"low_stock"`
	ExpiringSoon     []ProductResponse  `json:"expiring_soon"`
	RecentActivities []ActivityResponse `json:"recent_activities"`
}

// ActivityResponse entrada del registro de actividad.
type ActivityResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
