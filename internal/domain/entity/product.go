package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultQuantityUnit unidad usada cuando el producto no tiene QuantityUnit.
const DefaultQuantityUnit = "pcs"

// Product representa un producto del catálogo de la tienda.
// Stock se expresa en QuantityUnit; CostPrice y SellingPrice son precio por una unidad de QuantityUnit.
type Product struct {
	ID           string
	Name         string
	Description  string
	Category     string
	Barcode      string // único cuando no está vacío
	Stock        decimal.Decimal
	QuantityUnit string          // kg, gm, liters, ml, pcs, box, ... (texto libre)
	CostPrice    decimal.Decimal // costo promedio ponderado (actualizado por entradas)
	SellingPrice decimal.Decimal
	MfgDate      *time.Time
	ExpiryDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Unit devuelve la unidad de stock, "pcs" si está vacía.
func (p *Product) Unit() string {
	if p.QuantityUnit == "" {
		return DefaultQuantityUnit
	}
	return p.QuantityUnit
}

// UnitPrice devuelve el precio por unidad de stock: SellingPrice, si no CostPrice, si no 0.
func (p *Product) UnitPrice() decimal.Decimal {
	if p.SellingPrice.GreaterThan(decimal.Zero) {
		return p.SellingPrice
	}
	if p.CostPrice.GreaterThan(decimal.Zero) {
		return p.CostPrice
	}
	return decimal.Zero
}

// DaysUntilExpiry días completos hasta la fecha de vencimiento; ok=false si no tiene fecha.
func (p *Product) DaysUntilExpiry(now time.Time) (days int, ok bool) {
	if p.ExpiryDate == nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// la fecha de vencimiento es de calendario: se toman año, mes y día sin convertir zona
	y, m, d := p.ExpiryDate.Date()
	expDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return int(expDay.Sub(today).Hours() / 24), true
}
