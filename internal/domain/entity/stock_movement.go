package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste
)

// StockMovement registra un cambio de stock de un producto.
// Quantity y Unit son los solicitados; ProductQuantity es el mismo valor en la unidad del producto
// (positivo entrada, negativo salida).
type StockMovement struct {
	ID              string
	TransactionID   string // factura, orden de compra o ajuste
	ProductID       string
	Type            string
	Quantity        decimal.Decimal
	Unit            string
	ProductQuantity decimal.Decimal
	UnitCost        decimal.Decimal // por unidad del producto
	StockAfter      decimal.Decimal
	Reference       string
	CreatedAt       time.Time
	CreatedBy       string
}
