package billing

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repositorios de ventas e inventario.
type BillingTxRunner interface {
	Run(ctx context.Context, fn func(tx repository.TxRepos) error) error
}

// StockDeducter integra facturación con inventario.
// DeductInTx descuenta usando los repositorios del caller (misma transacción);
// si retorna error (ej: *inventory.InsufficientStockError) el caller hace rollback.
type StockDeducter interface {
	DeductInTx(ctx context.Context, tx repository.TxRepos, in inventory.StockChange) (*entity.StockMovement, error)
	ValidateUnit(unit string) error
}
