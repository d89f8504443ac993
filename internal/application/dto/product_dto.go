package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Fechas en formato 2006-01-02.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Barcode      string          `json:"barcode"`
	Stock        decimal.Decimal `json:"stock"`
	QuantityUnit string          `json:"quantity_unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	MfgDate      string          `json:"mfg_date,omitempty"`
	ExpiryDate   string          `json:"expiry_date,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Stock ni CostPrice).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	Barcode      *string          `json:"barcode"`
	QuantityUnit *string          `json:"quantity_unit"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	ExpiryDate   *string          `json:"expiry_date"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Barcode      string          `json:"barcode,omitempty"`
	Stock        decimal.Decimal `json:"stock"`
	QuantityUnit string          `json:"quantity_unit"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	MfgDate      string          `json:"mfg_date,omitempty"`
	ExpiryDate   string          `json:"expiry_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
