package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func newProductUseCase(t *testing.T, strict bool) (*usecase.ProductUseCase, *memory.Store) {
	t.Helper()
	store, err := memory.NewStore("")
	require.NoError(t, err)
	uc := usecase.NewProductUseCase(store, store.Repos().Products, usecase.ProductSettings{
		StrictUnits:         strict,
		LowStockThreshold:   decimal.NewFromInt(10),
		ExpiryDaysThreshold: 3,
	})
	return uc, store
}

func TestProductUseCase_CreateDefaultsYActividad(t *testing.T) {
	uc, store := newProductUseCase(t, false)
	ctx := context.Background()

	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: " Jabón ", Stock: dec("12"), SellingPrice: dec("2500"), ExpiryDate: "2026-12-31"})
	require.NoError(t, err)
	assert.Equal(t, "Jabón", p.Name)
	assert.Equal(t, "pcs", p.QuantityUnit)
	assert.Equal(t, "2026-12-31", p.ExpiryDate)

	acts, err := store.Repos().Activities.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Contains(t, acts[0].Message, "12 pcs")
}

func TestProductUseCase_CreateValidaciones(t *testing.T) {
	uc, _ := newProductUseCase(t, true)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "A", Stock: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "A", MfgDate: "31/12/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "A", QuantityUnit: "dozen"})
	assert.ErrorIs(t, err, domain.ErrUnrecognizedUnit)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "A", Barcode: "123"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "B", Barcode: "123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_UpdateConvierteAlCambiarUnidad(t *testing.T) {
	uc, _ := newProductUseCase(t, false)
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Queso", QuantityUnit: "kg", Stock: dec("3"), CostPrice: dec("20000"), SellingPrice: dec("26000")})
	require.NoError(t, err)

	upd, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: ptr("Queso campesino"), QuantityUnit: ptr("gm")})
	require.NoError(t, err)
	assert.Equal(t, "Queso campesino", upd.Name)
	assert.Equal(t, "gm", upd.QuantityUnit)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(dec("3000")), got.Stock.String())
	assert.True(t, got.CostPrice.Equal(dec("20")), got.CostPrice.String())
	assert.True(t, got.SellingPrice.Equal(dec("26")), got.SellingPrice.String())

	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{QuantityUnit: ptr("ml")})
	assert.ErrorIs(t, err, domain.ErrUnitMismatch)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// saleBeforeRun confirma una venta justo antes de la primera transacción que se le pide.
type saleBeforeRun struct {
	t     *testing.T
	store *memory.Store
	sale  inventory.StockChange
	done  bool
}

func (r *saleBeforeRun) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	if !r.done {
		r.done = true
		stock := inventory.NewStockUseCase(r.store.Repos().Products, false)
		require.NoError(r.t, r.store.Run(ctx, func(tx repository.TxRepos) error {
			_, err := stock.DeductInTx(ctx, tx, r.sale)
			return err
		}))
	}
	return r.store.Run(ctx, fn)
}

func TestProductUseCase_UpdateNoPierdeVentasConcurrentes(t *testing.T) {
	base, store := newProductUseCase(t, false)
	ctx := context.Background()
	p, err := base.Create(ctx, dto.CreateProductRequest{Name: "Azúcar", QuantityUnit: "kg", Stock: dec("2"), SellingPrice: dec("4000")})
	require.NoError(t, err)

	runner := &saleBeforeRun{t: t, store: store, sale: inventory.StockChange{ProductID: p.ID, Quantity: dec("2"), Unit: "kg", Now: time.Now()}}
	uc := usecase.NewProductUseCase(runner, store.Repos().Products, usecase.ProductSettings{LowStockThreshold: decimal.NewFromInt(10)})

	upd, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{QuantityUnit: ptr("gm")})
	require.NoError(t, err)
	assert.Equal(t, "gm", upd.QuantityUnit)
	assert.True(t, upd.Stock.IsZero(), "la venta de 2 kg no debe revertirse: %s", upd.Stock)

	got, err := store.Repos().Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.IsZero(), got.Stock.String())
}

func TestProductUseCase_UpdateSinCambioDeUnidadConservaStock(t *testing.T) {
	uc, _ := newProductUseCase(t, false)
	ctx := context.Background()
	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Pan", Stock: dec("8"), CostPrice: dec("300")})
	require.NoError(t, err)

	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{SellingPrice: ptr(dec("600")), ExpiryDate: ptr("2026-07-01")})
	require.NoError(t, err)
	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(dec("8")))
	assert.True(t, got.CostPrice.Equal(dec("300")))
	assert.True(t, got.SellingPrice.Equal(dec("600")))
	assert.Equal(t, "2026-07-01", got.ExpiryDate)
}

func TestProductUseCase_AlertasStockYVencimiento(t *testing.T) {
	uc, _ := newProductUseCase(t, false)
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)

	for _, in := range []dto.CreateProductRequest{
		{Name: "Yogur", Stock: dec("4"), ExpiryDate: "2026-05-12"},
		{Name: "Leche", Stock: dec("40"), ExpiryDate: "2026-05-10"},
		{Name: "Queso", Stock: dec("10"), ExpiryDate: "2026-05-09"}, // ya vencido
		{Name: "Arroz", Stock: dec("50"), ExpiryDate: "2026-06-30"},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	low, err := uc.LowStock(ctx, nil)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Yogur", low[0].Name)
	assert.Equal(t, "Queso", low[1].Name)

	exp, err := uc.ExpiringSoon(ctx, -1, now)
	require.NoError(t, err)
	names := make([]string, 0, len(exp))
	for _, p := range exp {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Yogur", "Leche"}, names)

	list, err := uc.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 4, list.Page.Total)
}
