package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/domain/units"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// PurchaseOrderUseCase gestiona órdenes de compra a proveedores.
// Recibir una orden suma el stock de todas sus líneas en una sola transacción.
type PurchaseOrderUseCase struct {
	txRunner    TxRunner
	poRepo      repository.PurchaseOrderRepository
	productRepo repository.ProductRepository
	stock       *StockUseCase
	log         *logger.Logger
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner TxRunner,
	poRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	stock *StockUseCase,
	log *logger.Logger,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:    txRunner,
		poRepo:      poRepo,
		productRepo: productRepo,
		stock:       stock,
		log:         log,
	}
}

// Create registra una orden pendiente. Cada línea debe usar una unidad compatible con la del producto.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if strings.TrimSpace(in.SupplierName) == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.PurchaseOrderItem, 0, len(in.Items))
	total := decimal.Zero
	for _, it := range in.Items {
		if it.ProductID == "" || !it.Quantity.IsPositive() || it.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if err := uc.stock.ValidateUnit(it.Unit); err != nil {
			return nil, err
		}
		product, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		unit := it.Unit
		if unit == "" {
			unit = product.Unit()
		}
		if !units.Compatible(unit, product.Unit()) {
			return nil, fmt.Errorf("%w: %s -> %s", domain.ErrUnitMismatch, units.Normalize(unit), units.Normalize(product.Unit()))
		}
		items = append(items, entity.PurchaseOrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Unit:      unit,
			UnitCost:  it.UnitCost,
		})
		total = total.Add(it.Quantity.Mul(it.UnitCost))
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		SupplierName: strings.TrimSpace(in.SupplierName),
		Items:        items,
		Total:        total.Round(2),
		Status:       entity.PurchaseOrderPending,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}
	out := ToPurchaseOrderResponse(po)
	return &out, nil
}

// Receive pasa la orden de pending a received y aplica una entrada (IN) por cada línea.
// ErrConflict si la orden no está pendiente.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, id, userID string) (*dto.PurchaseOrderResponse, error) {
	var po *entity.PurchaseOrder
	now := time.Now()
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		po, err = tx.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.PurchaseOrderPending {
			return fmt.Errorf("%w: orden en estado %s", domain.ErrConflict, po.Status)
		}
		for _, it := range po.Items {
			cost := it.UnitCost
			if _, err := uc.stock.AddInTx(ctx, tx, StockChange{
				ProductID:     it.ProductID,
				Quantity:      it.Quantity,
				Unit:          it.Unit,
				UnitCost:      &cost,
				TransactionID: po.ID,
				Reference:     "orden de compra " + po.SupplierName,
				UserID:        userID,
				Now:           now,
			}); err != nil {
				return err
			}
		}
		po.Status = entity.PurchaseOrderReceived
		po.ReceivedAt = &now
		po.UpdatedAt = now
		if err := tx.PurchaseOrders.UpdateStatus(ctx, po); err != nil {
			return err
		}
		return tx.Activities.Create(ctx, &entity.Activity{
			ID:        uuid.New().String(),
			Type:      entity.ActivityPurchaseReceived,
			Message:   fmt.Sprintf("Orden de compra de %s recibida (%s)", po.SupplierName, po.Total.StringFixed(2)),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("purchase_order_id", po.ID).Int("items", len(po.Items)).Msg("orden de compra recibida")
	out := ToPurchaseOrderResponse(po)
	return &out, nil
}

// Cancel pasa la orden de pending a cancelled. ErrConflict si no está pendiente.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	var po *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		po, err = tx.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.PurchaseOrderPending {
			return fmt.Errorf("%w: orden en estado %s", domain.ErrConflict, po.Status)
		}
		po.Status = entity.PurchaseOrderCancelled
		po.UpdatedAt = time.Now()
		return tx.PurchaseOrders.UpdateStatus(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("purchase_order_id", po.ID).Msg("orden de compra cancelada")
	out := ToPurchaseOrderResponse(po)
	return &out, nil
}

// Get obtiene una orden por ID.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	out := ToPurchaseOrderResponse(po)
	return &out, nil
}

// List órdenes paginadas, más recientes primero.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.PurchaseOrderResponse, error) {
	page.DefaultPage()
	list, err := uc.poRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, ToPurchaseOrderResponse(po))
	}
	return out, nil
}

// ToPurchaseOrderResponse mapea entidad a DTO.
func ToPurchaseOrderResponse(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemRequest, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.PurchaseOrderItemRequest{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			UnitCost:  it.UnitCost,
		})
	}
	return dto.PurchaseOrderResponse{
		ID:           po.ID,
		SupplierName: po.SupplierName,
		Status:       po.Status,
		Notes:        po.Notes,
		Total:        po.Total,
		Items:        items,
		CreatedAt:    po.CreatedAt,
		ReceivedAt:   po.ReceivedAt,
	}
}
