package units_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/units"
)

func TestCalculatePrice(t *testing.T) {
	tests := []struct {
		name        string
		qty         string
		unit        string
		price       string
		productUnit string
		wantTotal   string
		wantDisplay string
	}{
		{"misma unidad", "2", "kg", "50", "kg", "100", "2 kg"},
		{"gramos sobre precio por kg", "500", "gm", "100", "kg", "50", "500 gm"},
		{"kg sobre precio por gramo", "1.5", "kg", "0.2", "g", "300", "1.5 kg"},
		{"ml sobre precio por litro", "250", "ml", "80", "liters", "20", "250 ml"},
		{"cajas como piezas", "3", "box", "12.5", "pcs", "37.5", "3 box"},
		{"cantidad cero", "0", "kg", "50", "kg", "0", "0 kg"},
		{"unidad desconocida identidad", "5", "dozen", "2", "pcs", "10", "5 dozen"},
		{"precio cero", "4", "pcs", "0", "pcs", "0", "4 pcs"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := units.CalculatePriceWithUnitConversion(d(tc.qty), tc.unit, d(tc.price), tc.productUnit)
			require.NoError(t, err)
			assert.True(t, res.TotalPrice.Equal(d(tc.wantTotal)), "total=%s", res.TotalPrice)
			assert.Equal(t, tc.wantDisplay, res.DisplayQuantity)
		})
	}
}

func TestCalculatePrice_FamiliasDistintas(t *testing.T) {
	_, err := units.CalculatePriceWithUnitConversion(d("1"), "kg", d("10"), "pcs")
	assert.ErrorIs(t, err, domain.ErrUnitMismatch)

	_, err = units.CalculatePriceWithUnitConversion(d("1"), "liters", d("10"), "kg")
	assert.ErrorIs(t, err, domain.ErrUnitMismatch)
}

func TestCalculatePrice_CantidadNegativa(t *testing.T) {
	_, err := units.CalculatePriceWithUnitConversion(d("-1"), "kg", d("10"), "kg")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = units.CalculatePriceWithUnitConversion(d("1"), "kg", decimal.NewFromInt(-3), "kg")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}
