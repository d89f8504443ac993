package units

import (
	"strings"

	"github.com/shopspring/decimal"
)

// displayPlaces decimales usados en los textos para mostrar.
const displayPlaces = 4

// ConvertToBaseUnit expresa quantity (en unit) en la unidad base de su familia.
// Unidad no reconocida: identidad.
func ConvertToBaseUnit(quantity decimal.Decimal, unit string) decimal.Decimal {
	return quantity.Mul(Resolve(unit).Factor)
}

// ConvertFromBaseUnit expresa baseQuantity (en unidad base) en targetUnit.
// Unidad no reconocida: identidad.
func ConvertFromBaseUnit(baseQuantity decimal.Decimal, targetUnit string) decimal.Decimal {
	return baseQuantity.Div(Resolve(targetUnit).Factor)
}

// Convert convierte entre dos unidades de la misma familia; ok=false si son incompatibles.
func Convert(quantity decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	if !Compatible(from, to) {
		return decimal.Zero, false
	}
	return ConvertFromBaseUnit(ConvertToBaseUnit(quantity, from), to), true
}

// Format texto legible "<cantidad> <unidad>", sin ceros sobrantes ("1.5 kg").
func Format(quantity decimal.Decimal, unit string) string {
	return quantity.Round(displayPlaces).String() + " " + strings.TrimSpace(unit)
}

// formatExact como Format pero sin redondear.
func formatExact(quantity decimal.Decimal, unit string) string {
	return quantity.String() + " " + strings.TrimSpace(unit)
}
