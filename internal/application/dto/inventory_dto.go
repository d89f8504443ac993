package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Unit vacía = unidad del producto; UnitCost (por Unit) obligatorio en IN.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id"`
	Type      string           `json:"type"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Unit      string           `json:"unit,omitempty"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference string           `json:"reference,omitempty"`
}

// StockMovementResponse movimiento en respuestas.
type StockMovementResponse struct {
	ID              string          `json:"id"`
	TransactionID   string          `json:"transaction_id"`
	ProductID       string          `json:"product_id"`
	Type            string          `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	ProductQuantity decimal.Decimal `json:"product_quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	StockAfter      decimal.Decimal `json:"stock_after"`
	Reference       string          `json:"reference,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	CreatedBy       string          `json:"created_by,omitempty"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierName string                     `json:"supplier_name"`
	Notes        string                     `json:"notes,omitempty"`
	Items        []PurchaseOrderItemRequest `json:"items"`
}

// PurchaseOrderItemRequest línea de compra; UnitCost por Unit.
type PurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit,omitempty"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse orden de compra en respuestas.
type PurchaseOrderResponse struct {
	ID           string                     `json:"id"`
	SupplierName string                     `json:"supplier_name"`
	Status       string                     `json:"status"`
	Notes        string                     `json:"notes,omitempty"`
	Total        decimal.Decimal            `json:"total"`
	Items        []PurchaseOrderItemRequest `json:"items"`
	CreatedAt    time.Time                  `json:"created_at"`
	ReceivedAt   *time.Time                 `json:"received_at,omitempty"`
}
