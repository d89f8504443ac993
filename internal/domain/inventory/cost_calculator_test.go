package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tienda-api/internal/domain/inventory"
)

func TestWeightedAverageCost(t *testing.T) {
	d := decimal.RequireFromString
	tests := []struct {
		name                       string
		stock, cost, inQty, inCost string
		want                       string
	}{
		{"sin stock previo", "0", "0", "10", "40", "40"},
		{"promedio simple", "10", "40", "10", "60", "50"},
		{"entrada pequeña", "9", "100", "1", "200", "110"},
		{"stock negativo cuenta como cero", "-3", "99", "4", "25", "25"},
		{"entrada cero conserva costo", "0", "30", "0", "10", "30"},
		{"redondeo a 4 decimales", "2", "1", "1", "2", "1.3333"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.WeightedAverageCost(d(tc.stock), d(tc.cost), d(tc.inQty), d(tc.inCost))
			assert.True(t, got.Equal(d(tc.want)), "got %s", got)
		})
	}
}
