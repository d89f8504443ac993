package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// UpdateStatus cambia estado, fecha de recepción y UpdatedAt.
	UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error)
}
