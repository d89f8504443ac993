package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/units"
)

// ConvertRequest body para POST /api/units/convert.
type ConvertRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	From     string          `json:"from"`
	To       string          `json:"to"`
}

// ConvertResponse resultado de una conversión.
type ConvertResponse struct {
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	BaseQuantity decimal.Decimal `json:"base_quantity"`
	BaseUnit     string          `json:"base_unit"`
	Display      string          `json:"display"`
}

// QuoteRequest body para POST /api/units/quote: precio y stock de un producto para una cantidad.
type QuoteRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
}

// QuoteResponse precio calculado y validación de stock.
type QuoteResponse struct {
	ProductID   string                       `json:"product_id"`
	ProductName string                       `json:"product_name"`
	UnitPrice   decimal.Decimal              `json:"unit_price"` // por unidad del producto
	ProductUnit string                       `json:"product_unit"`
	Price       units.PriceCalculationResult `json:"price"`
	Stock       units.StockCheckResult       `json:"stock"`
}
