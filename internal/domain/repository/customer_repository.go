package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// GetForUpdate obtiene el cliente bloqueando su fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Customer, error)
	// GetByName busca por nombre sin distinguir mayúsculas.
	GetByName(ctx context.Context, name string) (*entity.Customer, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	Count(ctx context.Context) (int, error)
	TotalBalanceDue(ctx context.Context) (decimal.Decimal, error)
}
