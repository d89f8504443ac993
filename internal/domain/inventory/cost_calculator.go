package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost calcula el nuevo costo por unidad del producto tras una entrada (servicio de dominio).
// Todas las cantidades y costos deben venir en la unidad del producto.
//
//	nuevo = ((stock × costo) + (entrada × costoEntrada)) / (stock + entrada)
//
// Un stock negativo se trata como cero; si la suma no es positiva se conserva el costo actual.
func WeightedAverageCost(stock, currentCost, inQty, inUnitCost decimal.Decimal) decimal.Decimal {
	if stock.IsNegative() {
		stock = decimal.Zero
	}
	sum := stock.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return currentCost
	}
	num := stock.Mul(currentCost).Add(inQty.Mul(inUnitCost))
	return num.Div(sum).Round(4)
}
