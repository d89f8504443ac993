package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func newMovementUseCase(store *memory.Store) *inventory.RegisterMovementUseCase {
	repos := store.Repos()
	stock := inventory.NewStockUseCase(repos.Products, false)
	return inventory.NewRegisterMovementUseCase(store, repos.Movements, stock, logger.Nop())
}

func costPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestRegisterMovement_IN(t *testing.T) {
	store := newStore(t, product("aceite", "liters", "0", "0"))
	uc := newMovementUseCase(store)

	out, err := uc.RegisterMovement(context.Background(), "admin", dto.RegisterMovementRequest{
		ProductID: "aceite", Type: entity.MovementTypeIN, Quantity: dec("500"), Unit: "ml", UnitCost: costPtr("9"),
	})
	require.NoError(t, err)
	assert.True(t, out.ProductQuantity.Equal(dec("0.5")))
	assert.True(t, out.StockAfter.Equal(dec("0.5")))
	assert.True(t, out.UnitCost.Equal(dec("9000")), out.UnitCost.String())
	assert.Equal(t, "admin", out.CreatedBy)
}

func TestRegisterMovement_INSinCostoEsInvalido(t *testing.T) {
	store := newStore(t, product("aceite", "liters", "0", "0"))
	uc := newMovementUseCase(store)
	_, err := uc.RegisterMovement(context.Background(), "admin", dto.RegisterMovementRequest{
		ProductID: "aceite", Type: entity.MovementTypeIN, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterMovement_OUTInsuficienteNoCambiaStock(t *testing.T) {
	store := newStore(t, product("sal", "kg", "1", "10"))
	uc := newMovementUseCase(store)
	_, err := uc.RegisterMovement(context.Background(), "admin", dto.RegisterMovementRequest{
		ProductID: "sal", Type: entity.MovementTypeOUT, Quantity: dec("2"), Unit: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, stockOf(t, store, "sal").Equal(dec("1")))
}

func TestRegisterMovement_AjustePositivoYNegativo(t *testing.T) {
	store := newStore(t, product("huevos", "pcs", "30", "500"))
	uc := newMovementUseCase(store)
	ctx := context.Background()

	up, err := uc.RegisterMovement(ctx, "admin", dto.RegisterMovementRequest{
		ProductID: "huevos", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("6"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, up.Type)
	assert.True(t, up.StockAfter.Equal(dec("36")))

	down, err := uc.RegisterMovement(ctx, "admin", dto.RegisterMovementRequest{
		ProductID: "huevos", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-10"),
	})
	require.NoError(t, err)
	assert.True(t, down.ProductQuantity.Equal(dec("-10")))
	assert.True(t, down.StockAfter.Equal(dec("26")))

	p, _ := store.Repos().Products.GetByID(ctx, "huevos")
	assert.True(t, p.CostPrice.Equal(dec("500")), "ajuste sin costo conserva el costo promedio")

	acts, err := store.Repos().Activities.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, acts, 2)

	movs, err := uc.ListMovements(ctx, "huevos", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, down.ID, movs[0].ID)
}

func TestRegisterMovement_TipoDesconocido(t *testing.T) {
	store := newStore(t, product("x", "pcs", "1", "1"))
	uc := newMovementUseCase(store)
	_, err := uc.RegisterMovement(context.Background(), "admin", dto.RegisterMovementRequest{
		ProductID: "x", Type: "TRANSFER", Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
