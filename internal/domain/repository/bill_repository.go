package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// BillRepository define el puerto de persistencia para ventas (cabecera y líneas).
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Bill, error)
	// SalesTotal suma Total de las ventas con CreatedAt en [from, to).
	SalesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
