package entity

import "time"

// Tipos de actividad.
const (
	ActivityBillGenerated    = "bill_generated"
	ActivityPaymentReceived  = "payment_received"
	ActivityPurchaseReceived = "purchase_received"
	ActivityStockAdjusted    = "stock_adjusted"
	ActivityProductCreated   = "product_created"
)

// Activity entrada del registro de actividad reciente.
type Activity struct {
	ID        string
	Type      string
	Message   string
	CreatedAt time.Time
}
