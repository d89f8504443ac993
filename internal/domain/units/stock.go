package units

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// StockCheckResult resultado de validar una cantidad contra el stock de un producto.
// Los textos se expresan en la unidad del producto.
type StockCheckResult struct {
	Available        bool   `json:"available"`
	StockDisplay     string `json:"stockDisplay"`
	RequestedDisplay string `json:"requestedDisplay"`
	BaseUnit         string `json:"baseUnit"`
	Error            string `json:"error,omitempty"`
}

// CheckStockAvailability compara requestedQuantity (en requestedUnit) con product.Stock, ambos en unidad base.
// Stock insuficiente y unidades incompatibles se reportan en el resultado, no como error.
// Retorna error solo con producto nil o cantidad negativa. No modifica el producto.
func CheckStockAvailability(product *entity.Product, requestedQuantity decimal.Decimal, requestedUnit string) (StockCheckResult, error) {
	if product == nil {
		return StockCheckResult{}, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	if requestedQuantity.IsNegative() {
		return StockCheckResult{}, domain.ErrInvalidQuantity
	}
	productUnit := product.Unit()
	if requestedUnit == "" {
		requestedUnit = productUnit
	}
	res := StockCheckResult{
		StockDisplay: Format(product.Stock, productUnit),
		BaseUnit:     Resolve(productUnit).Base,
	}
	if !Compatible(requestedUnit, productUnit) {
		res.RequestedDisplay = Format(requestedQuantity, requestedUnit)
		res.Error = fmt.Sprintf("unidades incompatibles: %s no se puede convertir a %s", Normalize(requestedUnit), Normalize(productUnit))
		return res, nil
	}

	stockInBase := ConvertToBaseUnit(product.Stock, productUnit)
	requestedInBase := ConvertToBaseUnit(requestedQuantity, requestedUnit)
	requested := ConvertFromBaseUnit(requestedInBase, productUnit)
	res.RequestedDisplay = Format(requested, productUnit)
	// una solicitud de cero nunca se bloquea
	res.Available = requestedQuantity.IsZero() || requestedInBase.LessThanOrEqual(stockInBase)
	if !res.Available && res.RequestedDisplay == res.StockDisplay {
		res.StockDisplay = formatExact(product.Stock, productUnit)
		res.RequestedDisplay = formatExact(requested, productUnit)
	}
	return res, nil
}
