package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/domain/units"
)

const dateLayout = "2006-01-02"

// ProductSettings umbrales de alertas del catálogo.
type ProductSettings struct {
	StrictUnits         bool
	LowStockThreshold   decimal.Decimal
	ExpiryDaysThreshold int
}

// ProductUseCase casos de uso CRUD para productos. CostPrice y Stock luego se manejan vía movimientos.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
	settings ProductSettings
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository, settings ProductSettings) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, settings: settings}
}

// Create crea un producto con su stock y costo iniciales y registra la actividad.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Stock.IsNegative() || in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	unit := strings.TrimSpace(in.QuantityUnit)
	if unit == "" {
		unit = entity.DefaultQuantityUnit
	}
	if err := uc.validateUnit(unit); err != nil {
		return nil, err
	}
	mfg, err := parseDate(in.MfgDate)
	if err != nil {
		return nil, err
	}
	exp, err := parseDate(in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  in.Description,
		Category:     in.Category,
		Barcode:      strings.TrimSpace(in.Barcode),
		Stock:        in.Stock,
		QuantityUnit: unit,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		MfgDate:      mfg,
		ExpiryDate:   exp,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		if err := tx.Products.Create(ctx, product); err != nil {
			return err
		}
		return tx.Activities.Create(ctx, &entity.Activity{
			ID:        uuid.New().String(),
			Type:      entity.ActivityProductCreated,
			Message:   fmt.Sprintf("Producto %s creado con %s", product.Name, units.Format(product.Stock, product.Unit())),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetByBarcode obtiene un producto por código de barras.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite fijar CostPrice ni Stock (se manejan vía movimientos);
// si cambia la unidad dentro de la misma familia, stock y precios se convierten a la nueva unidad.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		// el stock se convierte desde la fila bloqueada para no pisar ventas concurrentes
		product, err = tx.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		unitChanged, err := uc.applyUpdate(product, in)
		if err != nil {
			return err
		}
		product.UpdatedAt = time.Now()
		if err := tx.Products.Update(ctx, product); err != nil {
			return err
		}
		if !unitChanged {
			return nil
		}
		if err := tx.Products.UpdateStock(ctx, product.ID, product.Stock); err != nil {
			return err
		}
		return tx.Products.UpdateCost(ctx, product.ID, product.CostPrice)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// applyUpdate aplica los campos de in sobre product; indica si cambió la unidad.
func (uc *ProductUseCase) applyUpdate(product *entity.Product, in dto.UpdateProductRequest) (bool, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return false, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Barcode != nil {
		product.Barcode = strings.TrimSpace(*in.Barcode)
	}
	oldUnit := product.Unit()
	if in.QuantityUnit != nil {
		unit := strings.TrimSpace(*in.QuantityUnit)
		if unit == "" {
			unit = entity.DefaultQuantityUnit
		}
		if err := uc.validateUnit(unit); err != nil {
			return false, err
		}
		if !units.Compatible(unit, oldUnit) {
			return false, fmt.Errorf("%w: %s -> %s", domain.ErrUnitMismatch, units.Normalize(oldUnit), units.Normalize(unit))
		}
		product.QuantityUnit = unit
	}
	newUnit := product.Unit()
	unitChanged := units.Normalize(newUnit) != units.Normalize(oldUnit)
	if unitChanged {
		product.Stock, _ = units.Convert(product.Stock, oldUnit, newUnit)
		product.CostPrice = pricePerUnit(product.CostPrice, oldUnit, newUnit)
		product.SellingPrice = pricePerUnit(product.SellingPrice, oldUnit, newUnit)
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return false, domain.ErrInvalidInput
		}
		product.SellingPrice = *in.SellingPrice
	}
	if in.ExpiryDate != nil {
		exp, err := parseDate(*in.ExpiryDate)
		if err != nil {
			return false, err
		}
		product.ExpiryDate = exp
	}
	return unitChanged, nil
}

// pricePerUnit pasa un precio por unidad `from` a precio por unidad `to` de la misma familia.
func pricePerUnit(price decimal.Decimal, from, to string) decimal.Decimal {
	one := decimal.NewFromInt(1)
	return price.Mul(units.ConvertToBaseUnit(one, to)).Div(units.ConvertToBaseUnit(one, from)).Round(4)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// LowStock productos con stock <= threshold; nil usa el umbral configurado.
func (uc *ProductUseCase) LowStock(ctx context.Context, threshold *decimal.Decimal) ([]dto.ProductResponse, error) {
	t := uc.settings.LowStockThreshold
	if threshold != nil {
		t = *threshold
	}
	list, err := uc.repo.ListLowStock(ctx, t)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// ExpiringSoon productos que vencen entre hoy y dentro de days días; days < 0 usa el umbral configurado.
// Los ya vencidos no se incluyen.
func (uc *ProductUseCase) ExpiringSoon(ctx context.Context, days int, now time.Time) ([]dto.ProductResponse, error) {
	if days < 0 {
		days = uc.settings.ExpiryDaysThreshold
	}
	// margen de un día para fechas guardadas en otra zona; el filtro exacto es DaysUntilExpiry
	list, err := uc.repo.ListExpiringBefore(ctx, now.AddDate(0, 0, days+1))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if d, ok := p.DaysUntilExpiry(now); ok && d >= 0 && d <= days {
			out = append(out, *toProductResponse(p))
		}
	}
	return out, nil
}

func (uc *ProductUseCase) validateUnit(unit string) error {
	if !uc.settings.StrictUnits {
		return nil
	}
	return units.ValidateUnit(unit)
}

// parseDate interpreta "2006-01-02"; vacío = sin fecha.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Barcode:      p.Barcode,
		Stock:        p.Stock,
		QuantityUnit: p.Unit(),
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		MfgDate:      formatDate(p.MfgDate),
		ExpiryDate:   formatDate(p.ExpiryDate),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
