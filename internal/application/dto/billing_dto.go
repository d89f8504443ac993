package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain/units"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone,omitempty"`
	Email      string          `json:"email,omitempty"`
	Address    string          `json:"address,omitempty"`
	BalanceDue decimal.Decimal `json:"balance_due"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RecordPaymentRequest body para POST /api/customers/:id/payments.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreateBillRequest body para POST /api/bills y /api/bills/quote.
// CustomerID opcional; si va vacío se usa CustomerName (venta a nombre libre).
type CreateBillRequest struct {
	CustomerID    string            `json:"customer_id,omitempty"`
	CustomerName  string            `json:"customer_name,omitempty"`
	PaymentMethod string            `json:"payment_method"` // cash, card, upi, due, credit
	DiscountPct   decimal.Decimal   `json:"discount_pct"`
	TaxPct        decimal.Decimal   `json:"tax_pct"`
	Items         []BillItemRequest `json:"items"`
}

// BillItemRequest línea de venta: producto, cantidad y unidad solicitada (vacía = unidad del producto).
type BillItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit,omitempty"`
}

// BillQuoteResponse vista previa de una venta sin confirmar.
type BillQuoteResponse struct {
	Items     []BillLineQuote `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	Available bool            `json:"available"` // todas las líneas tienen stock
}

// BillLineQuote precio y stock de una línea.
type BillLineQuote struct {
	ProductID       string                 `json:"product_id"`
	ProductName     string                 `json:"product_name"`
	DisplayQuantity string                 `json:"display_quantity"`
	UnitPrice       decimal.Decimal        `json:"unit_price"`
	Total           decimal.Decimal        `json:"total"`
	Stock           units.StockCheckResult `json:"stock"`
}

// BillResponse venta confirmada.
type BillResponse struct {
	ID            string             `json:"id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	CustomerName  string             `json:"customer_name"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DiscountPct   decimal.Decimal    `json:"discount_pct"`
	Discount      decimal.Decimal    `json:"discount"`
	TaxPct        decimal.Decimal    `json:"tax_pct"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	Items         []BillItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
}

// BillItemResponse línea de venta en la respuesta.
type BillItemResponse struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	DisplayQuantity string          `json:"display_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Total           decimal.Decimal `json:"total"`
}

// InsufficientStockResponse cuerpo 409 cuando una línea no tiene stock.
type InsufficientStockResponse struct {
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	ProductID   string                 `json:"product_id"`
	ProductName string                 `json:"product_name"`
	Stock       units.StockCheckResult `json:"stock"`
}
