package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/domain/units"
)

// InsufficientStockError se retorna cuando una salida supera el stock disponible.
// Envuelve domain.ErrInsufficientStock y lleva el resultado de la validación para mostrar.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Check       units.StockCheckResult
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %s, solicitado %s",
		e.ProductName, e.Check.StockDisplay, e.Check.RequestedDisplay)
}

func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }

// StockUseCase valida y mueve stock de productos aplicando el motor de unidades.
// Los métodos *InTx deben llamarse dentro de TxRunner.Run.
type StockUseCase struct {
	productRepo repository.ProductRepository
	strictUnits bool
}

// NewStockUseCase construye el caso de uso. strictUnits rechaza unidades fuera de la tabla.
func NewStockUseCase(productRepo repository.ProductRepository, strictUnits bool) *StockUseCase {
	return &StockUseCase{productRepo: productRepo, strictUnits: strictUnits}
}

// ValidateUnit aplica el modo estricto; unidad vacía siempre es válida (se usa la del producto).
func (uc *StockUseCase) ValidateUnit(unit string) error {
	if !uc.strictUnits || unit == "" {
		return nil
	}
	return units.ValidateUnit(unit)
}

// CheckAvailability valida sin bloquear (vista previa). No modifica el producto.
func (uc *StockUseCase) CheckAvailability(ctx context.Context, productID string, quantity decimal.Decimal, unit string) (*entity.Product, units.StockCheckResult, error) {
	if err := uc.ValidateUnit(unit); err != nil {
		return nil, units.StockCheckResult{}, err
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, units.StockCheckResult{}, err
	}
	if product == nil {
		return nil, units.StockCheckResult{}, domain.ErrNotFound
	}
	check, err := units.CheckStockAvailability(product, quantity, unit)
	if err != nil {
		return nil, units.StockCheckResult{}, err
	}
	return product, check, nil
}

// StockChange datos de una entrada o salida de stock.
// Unit vacía = unidad del producto. UnitCost es por Unit; nil conserva el costo actual (solo entradas).
type StockChange struct {
	ProductID     string
	Quantity      decimal.Decimal
	Unit          string
	UnitCost      *decimal.Decimal
	MovementType  string // por defecto OUT en salidas e IN en entradas
	TransactionID string
	Reference     string
	UserID        string
	Now           time.Time
}

// DeductInTx bloquea el producto, vuelve a validar el stock sobre la fila bloqueada y descuenta.
// Retorna *InsufficientStockError si no alcanza; el stock nunca queda negativo.
func (uc *StockUseCase) DeductInTx(ctx context.Context, tx repository.TxRepos, in StockChange) (*entity.StockMovement, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := tx.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	productUnit := product.Unit()
	unit := in.Unit
	if unit == "" {
		unit = productUnit
	}
	check, err := units.CheckStockAvailability(product, in.Quantity, unit)
	if err != nil {
		return nil, err
	}
	if check.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnitMismatch, check.Error)
	}
	if !check.Available {
		return nil, &InsufficientStockError{ProductID: product.ID, ProductName: product.Name, Check: check}
	}

	qty, _ := units.Convert(in.Quantity, unit, productUnit)
	newStock := product.Stock.Sub(qty)
	if newStock.IsNegative() {
		newStock = decimal.Zero
	}
	if err := tx.Products.UpdateStock(ctx, product.ID, newStock); err != nil {
		return nil, err
	}
	movType := in.MovementType
	if movType == "" {
		movType = entity.MovementTypeOUT
	}
	mov := &entity.StockMovement{
		ID:              uuid.New().String(),
		TransactionID:   in.TransactionID,
		ProductID:       product.ID,
		Type:            movType,
		Quantity:        in.Quantity,
		Unit:            unit,
		ProductQuantity: qty.Neg(),
		UnitCost:        product.CostPrice,
		StockAfter:      newStock,
		Reference:       in.Reference,
		CreatedAt:       in.Now,
		CreatedBy:       in.UserID,
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// AddInTx bloquea el producto, suma la cantidad convertida a su unidad y recalcula el costo promedio ponderado.
func (uc *StockUseCase) AddInTx(ctx context.Context, tx repository.TxRepos, in StockChange) (*entity.StockMovement, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := tx.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	productUnit := product.Unit()
	unit := in.Unit
	if unit == "" {
		unit = productUnit
	}
	qty, ok := units.Convert(in.Quantity, unit, productUnit)
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrUnitMismatch, units.Normalize(unit), units.Normalize(productUnit))
	}

	cost := product.CostPrice
	if in.UnitCost != nil {
		cost = costPerProductUnit(*in.UnitCost, unit, productUnit)
	}
	newCost := inventory.WeightedAverageCost(product.Stock, product.CostPrice, qty, cost)
	newStock := product.Stock.Add(qty)
	if !newCost.Equal(product.CostPrice) {
		if err := tx.Products.UpdateCost(ctx, product.ID, newCost); err != nil {
			return nil, err
		}
	}
	if err := tx.Products.UpdateStock(ctx, product.ID, newStock); err != nil {
		return nil, err
	}
	movType := in.MovementType
	if movType == "" {
		movType = entity.MovementTypeIN
	}
	mov := &entity.StockMovement{
		ID:              uuid.New().String(),
		TransactionID:   in.TransactionID,
		ProductID:       product.ID,
		Type:            movType,
		Quantity:        in.Quantity,
		Unit:            unit,
		ProductQuantity: qty,
		UnitCost:        cost,
		StockAfter:      newStock,
		Reference:       in.Reference,
		CreatedAt:       in.Now,
		CreatedBy:       in.UserID,
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// costPerProductUnit pasa un costo por unidad de `unit` a costo por unidad del producto (ej. 0.05/gm -> 50/kg).
func costPerProductUnit(cost decimal.Decimal, unit, productUnit string) decimal.Decimal {
	one := decimal.NewFromInt(1)
	return cost.Mul(units.ConvertToBaseUnit(one, productUnit)).Div(units.ConvertToBaseUnit(one, unit)).Round(4)
}
