package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
)

func newUnitsUseCase(t *testing.T, strict bool) *usecase.UnitsUseCase {
	t.Helper()
	store, err := memory.NewStore("")
	require.NoError(t, err)
	require.NoError(t, store.Repos().Products.Create(context.Background(), &entity.Product{
		ID: "arroz", Name: "Arroz", QuantityUnit: "kg", Stock: dec("2"), SellingPrice: dec("3000"),
	}))
	return usecase.NewUnitsUseCase(inventory.NewStockUseCase(store.Repos().Products, strict))
}

func TestUnitsUseCase_Convert(t *testing.T) {
	uc := newUnitsUseCase(t, false)

	out, err := uc.Convert(dto.ConvertRequest{Quantity: dec("1.5"), From: "kg", To: "gm"})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(dec("1500")))
	assert.True(t, out.BaseQuantity.Equal(dec("1500")))
	assert.Equal(t, "gm", out.BaseUnit)
	assert.Equal(t, "1500 gm", out.Display)

	_, err = uc.Convert(dto.ConvertRequest{Quantity: dec("1"), From: "kg", To: "ml"})
	assert.ErrorIs(t, err, domain.ErrUnitMismatch)
	_, err = uc.Convert(dto.ConvertRequest{Quantity: dec("-1"), From: "kg", To: "gm"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestUnitsUseCase_ConvertEstricto(t *testing.T) {
	uc := newUnitsUseCase(t, true)
	_, err := uc.Convert(dto.ConvertRequest{Quantity: dec("1"), From: "dozen", To: "pcs"})
	assert.ErrorIs(t, err, domain.ErrUnrecognizedUnit)
}

func TestUnitsUseCase_Quote(t *testing.T) {
	uc := newUnitsUseCase(t, false)
	ctx := context.Background()

	q, err := uc.Quote(ctx, dto.QuoteRequest{ProductID: "arroz", Quantity: dec("250"), Unit: "gm"})
	require.NoError(t, err)
	assert.True(t, q.Price.TotalPrice.Equal(dec("750")), q.Price.TotalPrice.String())
	assert.Equal(t, "250 gm", q.Price.DisplayQuantity)
	assert.True(t, q.Stock.Available)
	assert.Equal(t, "0.25 kg", q.Stock.RequestedDisplay)

	q, err = uc.Quote(ctx, dto.QuoteRequest{ProductID: "arroz", Quantity: dec("3")})
	require.NoError(t, err)
	assert.False(t, q.Stock.Available)

	_, err = uc.Quote(ctx, dto.QuoteRequest{ProductID: "nada", Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NotEmpty(t, uc.ListUnits())
}
