package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/units"
)

// UnitsUseCase expone el motor de unidades: tabla, conversiones y cotización de un producto.
type UnitsUseCase struct {
	stock *inventory.StockUseCase
}

// NewUnitsUseCase construye el caso de uso.
func NewUnitsUseCase(stock *inventory.StockUseCase) *UnitsUseCase {
	return &UnitsUseCase{stock: stock}
}

// ListUnits unidades reconocidas.
func (uc *UnitsUseCase) ListUnits() []units.Unit {
	return units.Units()
}

// Convert convierte una cantidad entre dos unidades de la misma familia.
func (uc *UnitsUseCase) Convert(in dto.ConvertRequest) (*dto.ConvertResponse, error) {
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.From == "" || in.To == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.stock.ValidateUnit(in.From); err != nil {
		return nil, err
	}
	if err := uc.stock.ValidateUnit(in.To); err != nil {
		return nil, err
	}
	converted, ok := units.Convert(in.Quantity, in.From, in.To)
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrUnitMismatch, units.Normalize(in.From), units.Normalize(in.To))
	}
	return &dto.ConvertResponse{
		Quantity:     converted,
		Unit:         in.To,
		BaseQuantity: units.ConvertToBaseUnit(in.Quantity, in.From),
		BaseUnit:     units.Resolve(in.From).Base,
		Display:      units.Format(converted, in.To),
	}, nil
}

// Quote precio y disponibilidad de una cantidad de producto, sin reservar stock.
func (uc *UnitsUseCase) Quote(ctx context.Context, in dto.QuoteRequest) (*dto.QuoteResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, check, err := uc.stock.CheckAvailability(ctx, in.ProductID, in.Quantity, in.Unit)
	if err != nil {
		return nil, err
	}
	unit := in.Unit
	if unit == "" {
		unit = product.Unit()
	}
	price, err := units.CalculatePriceWithUnitConversion(in.Quantity, unit, product.UnitPrice(), product.Unit())
	if err != nil {
		return nil, err
	}
	return &dto.QuoteResponse{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.UnitPrice(),
		ProductUnit: product.Unit(),
		Price:       price,
		Stock:       check,
	}, nil
}
