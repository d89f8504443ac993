package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la tienda. BalanceDue acumula las ventas a crédito.
type Customer struct {
	ID         string
	Name       string
	Phone      string
	Email      string
	Address    string
	BalanceDue decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
