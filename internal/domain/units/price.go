package units

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
)

// PriceCalculationResult precio total de una cantidad solicitada.
type PriceCalculationResult struct {
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	DisplayQuantity string          `json:"displayQuantity"`
}

// CalculatePriceWithUnitConversion calcula el precio de requestedQuantity (en requestedUnit)
// para un producto que cuesta pricePerProductUnit por cada productUnit.
//
//	total = base(requestedQuantity, requestedUnit) × pricePerProductUnit / base(1, productUnit)
//
// DisplayQuantity conserva la cantidad y unidad originales ("2 kg").
func CalculatePriceWithUnitConversion(
	requestedQuantity decimal.Decimal,
	requestedUnit string,
	pricePerProductUnit decimal.Decimal,
	productUnit string,
) (PriceCalculationResult, error) {
	if requestedQuantity.IsNegative() || pricePerProductUnit.IsNegative() {
		return PriceCalculationResult{}, domain.ErrInvalidQuantity
	}
	if !Compatible(requestedUnit, productUnit) {
		return PriceCalculationResult{}, fmt.Errorf("%w: %s -> %s", domain.ErrUnitMismatch, Normalize(requestedUnit), Normalize(productUnit))
	}
	display := Format(requestedQuantity, requestedUnit)
	if requestedQuantity.IsZero() {
		return PriceCalculationResult{TotalPrice: decimal.Zero, DisplayQuantity: display}, nil
	}
	// multiplicar antes de dividir evita perder precisión en el precio por unidad base
	total := ConvertToBaseUnit(requestedQuantity, requestedUnit).
		Mul(pricePerProductUnit).
		Div(ConvertToBaseUnit(decimal.NewFromInt(1), productUnit))
	return PriceCalculationResult{TotalPrice: total, DisplayQuantity: display}, nil
}
