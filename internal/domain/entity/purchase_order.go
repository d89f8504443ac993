package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de compra.
const (
	PurchaseOrderPending   = "pending"
	PurchaseOrderReceived  = "received"
	PurchaseOrderCancelled = "cancelled"
)

// PurchaseOrder orden de compra a proveedor; al recibirse suma stock.
type PurchaseOrder struct {
	ID           string
	SupplierName string
	Items        []PurchaseOrderItem
	Total        decimal.Decimal
	Status       string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ReceivedAt   *time.Time
}

// PurchaseOrderItem línea de compra. UnitCost es por unidad de Unit.
type PurchaseOrderItem struct {
	ProductID string
	Quantity  decimal.Decimal
	Unit      string
	UnitCost  decimal.Decimal
}
