package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en una factura.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentUPI    = "upi"
	PaymentDue    = "due"
	PaymentCredit = "credit"
)

// Estados de factura.
const (
	BillStatusCompleted = "completed"
)

// IsCreditPayment indica si el método de pago suma al saldo del cliente.
func IsCreditPayment(method string) bool {
	return method == PaymentDue || method == PaymentCredit
}

// ValidPaymentMethod indica si el método de pago es conocido.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentDue, PaymentCredit:
		return true
	}
	return false
}

// Bill representa la cabecera de una venta.
type Bill struct {
	ID            string
	CustomerID    string // vacío si es venta a nombre libre
	CustomerName  string
	Items         []BillItem
	Subtotal      decimal.Decimal
	DiscountPct   decimal.Decimal
	Discount      decimal.Decimal
	TaxPct        decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	Status        string
	CreatedAt     time.Time
	CreatedBy     string
}

// BillItem línea de venta. UnitPrice es el precio por unidad solicitada (Total / Quantity).
type BillItem struct {
	ProductID       string
	ProductName     string
	Quantity        decimal.Decimal
	Unit            string
	DisplayQuantity string // "2 kg"
	UnitPrice       decimal.Decimal
	Total           decimal.Decimal
}
