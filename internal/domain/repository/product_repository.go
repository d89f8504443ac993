package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// Update modifica los datos del catálogo; no toca Stock ni CostPrice.
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, productID string, stock decimal.Decimal) error
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, threshold decimal.Decimal) ([]*entity.Product, error)
	ListExpiringBefore(ctx context.Context, until time.Time) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
