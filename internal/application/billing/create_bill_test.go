package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/billing"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store     *memory.Store
	bills     *billing.CreateBillUseCase
	customers *billing.CustomerUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := memory.NewStore("")
	require.NoError(t, err)
	repos := store.Repos()
	ctx := context.Background()
	for _, p := range []*entity.Product{
		{ID: "arroz", Name: "Arroz", QuantityUnit: "kg", Stock: dec("2"), CostPrice: dec("2500"), SellingPrice: dec("3000")},
		{ID: "leche", Name: "Leche", QuantityUnit: "liters", Stock: dec("1"), SellingPrice: dec("4200")},
		{ID: "pan", Name: "Pan", QuantityUnit: "pcs", Stock: dec("10"), CostPrice: dec("500")},
	} {
		require.NoError(t, repos.Products.Create(ctx, p))
	}
	stock := inventory.NewStockUseCase(repos.Products, false)
	return &fixture{
		store:     store,
		bills:     billing.NewCreateBillUseCase(store, stock, repos.Products, repos.Bills, logger.Nop()),
		customers: billing.NewCustomerUseCase(store, repos.Customers, logger.Nop()),
	}
}

func (f *fixture) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	p, err := f.store.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateBill
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateBill_TotalesConConversion(t *testing.T) {
	f := newFixture(t)
	bill, err := f.bills.CreateBill(context.Background(), "cajero1", dto.CreateBillRequest{
		CustomerName:  "Mostrador",
		PaymentMethod: entity.PaymentCash,
		DiscountPct:   dec("10"),
		TaxPct:        dec("5"),
		Items: []dto.BillItemRequest{
			{ProductID: "arroz", Quantity: dec("500"), Unit: "gm"}, // 1500
			{ProductID: "leche", Quantity: dec("250"), Unit: "ml"}, // 1050
			{ProductID: "pan", Quantity: dec("3")},                 // 1500 (precio de costo)
		},
	})
	require.NoError(t, err)

	assert.True(t, bill.Subtotal.Equal(dec("4050")), bill.Subtotal.String())
	assert.True(t, bill.Discount.Equal(dec("405")), bill.Discount.String())
	assert.True(t, bill.Tax.Equal(dec("182.25")), bill.Tax.String())
	assert.True(t, bill.Total.Equal(dec("3827.25")), bill.Total.String())
	require.Len(t, bill.Items, 3)
	assert.Equal(t, "500 gm", bill.Items[0].DisplayQuantity)
	assert.Equal(t, "pcs", bill.Items[2].Unit)
	assert.Empty(t, bill.CustomerID, "venta de contado a nombre libre no crea cliente")

	assert.True(t, f.stock(t, "arroz").Equal(dec("1.5")))
	assert.True(t, f.stock(t, "leche").Equal(dec("0.75")))
	assert.True(t, f.stock(t, "pan").Equal(dec("7")))

	got, err := f.bills.GetBill(context.Background(), bill.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, got.ID)
}

func TestCreateBill_StockInsuficienteHaceRollback(t *testing.T) {
	f := newFixture(t)
	_, err := f.bills.CreateBill(context.Background(), "cajero1", dto.CreateBillRequest{
		CustomerName:  "Mostrador",
		PaymentMethod: entity.PaymentCash,
		Items: []dto.BillItemRequest{
			{ProductID: "pan", Quantity: dec("2")},
			{ProductID: "arroz", Quantity: dec("1.5"), Unit: "kg"},
			{ProductID: "arroz", Quantity: dec("600"), Unit: "gm"}, // acumulado 2.1 kg > 2 kg
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var insuf *inventory.InsufficientStockError
	require.True(t, errors.As(err, &insuf))
	assert.Equal(t, "arroz", insuf.ProductID)

	assert.True(t, f.stock(t, "pan").Equal(dec("10")), "la primera línea se revierte")
	assert.True(t, f.stock(t, "arroz").Equal(dec("2")))
	list, err := f.bills.ListBills(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateBill_CreditoSumaAlSaldo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bill, err := f.bills.CreateBill(ctx, "cajero1", dto.CreateBillRequest{
		CustomerName:  "Doña Rosa",
		PaymentMethod: entity.PaymentDue,
		Items:         []dto.BillItemRequest{{ProductID: "arroz", Quantity: dec("1"), Unit: "kg"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, bill.CustomerID, "a crédito se crea el cliente")

	_, err = f.bills.CreateBill(ctx, "cajero1", dto.CreateBillRequest{
		CustomerName:  "doña rosa",
		PaymentMethod: entity.PaymentCredit,
		Items:         []dto.BillItemRequest{{ProductID: "pan", Quantity: dec("2")}},
	})
	require.NoError(t, err)

	c, err := f.customers.GetByID(ctx, bill.CustomerID)
	require.NoError(t, err)
	assert.True(t, c.BalanceDue.Equal(dec("4000")), c.BalanceDue.String())

	paid, err := f.customers.RecordPayment(ctx, c.ID, dec("5000"))
	require.NoError(t, err)
	assert.True(t, paid.BalanceDue.IsZero(), "el saldo no baja de cero")
}

// staleCustomers simula lecturas sin bloqueo que ven un saldo viejo (otra tx confirmó después);
// solo GetForUpdate devuelve el saldo vigente.
type staleCustomers struct {
	repository.CustomerRepository
	stale decimal.Decimal
}

func (s staleCustomers) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := s.CustomerRepository.GetByID(ctx, id)
	if c != nil {
		c.BalanceDue = s.stale
	}
	return c, err
}

func (s staleCustomers) GetByName(ctx context.Context, name string) (*entity.Customer, error) {
	c, err := s.CustomerRepository.GetByName(ctx, name)
	if c != nil {
		c.BalanceDue = s.stale
	}
	return c, err
}

type staleRunner struct {
	store *memory.Store
}

func (r staleRunner) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	return r.store.Run(ctx, func(tx repository.TxRepos) error {
		tx.Customers = staleCustomers{CustomerRepository: tx.Customers, stale: decimal.Zero}
		return fn(tx)
	})
}

func TestCustomerBalance_UsaLecturaBloqueada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repos := f.store.Repos()
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "ana", Name: "Ana", BalanceDue: dec("100")}))

	runner := staleRunner{store: f.store}
	stock := inventory.NewStockUseCase(repos.Products, false)
	bills := billing.NewCreateBillUseCase(runner, stock, repos.Products, repos.Bills, logger.Nop())
	customers := billing.NewCustomerUseCase(runner, repos.Customers, logger.Nop())

	_, err := bills.CreateBill(ctx, "cajero1", dto.CreateBillRequest{
		CustomerID:    "ana",
		PaymentMethod: entity.PaymentDue,
		Items:         []dto.BillItemRequest{{ProductID: "arroz", Quantity: dec("1"), Unit: "kg"}},
	})
	require.NoError(t, err)
	c, err := repos.Customers.GetByID(ctx, "ana")
	require.NoError(t, err)
	assert.True(t, c.BalanceDue.Equal(dec("3100")), "el abono a crédito parte del saldo vigente: %s", c.BalanceDue)

	paid, err := customers.RecordPayment(ctx, "ana", dec("50"))
	require.NoError(t, err)
	assert.True(t, paid.BalanceDue.Equal(dec("3050")), paid.BalanceDue.String())
}

func TestCreateBill_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := dto.CreateBillRequest{
		CustomerName:  "X",
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.BillItemRequest{{ProductID: "pan", Quantity: dec("1")}},
	}

	cases := []struct {
		name   string
		mutate func(r *dto.CreateBillRequest)
		want   error
	}{
		{"sin líneas", func(r *dto.CreateBillRequest) { r.Items = nil }, domain.ErrInvalidInput},
		{"cantidad cero", func(r *dto.CreateBillRequest) { r.Items = []dto.BillItemRequest{{ProductID: "pan"}} }, domain.ErrInvalidInput},
		{"método de pago", func(r *dto.CreateBillRequest) { r.PaymentMethod = "bitcoin" }, domain.ErrInvalidInput},
		{"descuento > 100", func(r *dto.CreateBillRequest) { r.DiscountPct = dec("101") }, domain.ErrInvalidInput},
		{"sin cliente", func(r *dto.CreateBillRequest) { r.CustomerName = "  " }, domain.ErrInvalidInput},
		{"producto inexistente", func(r *dto.CreateBillRequest) {
			r.Items = []dto.BillItemRequest{{ProductID: "nada", Quantity: dec("1")}}
		}, domain.ErrNotFound},
		{"unidad de otra familia", func(r *dto.CreateBillRequest) {
			r.Items = []dto.BillItemRequest{{ProductID: "arroz", Quantity: dec("1"), Unit: "ml"}}
		}, domain.ErrUnitMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			_, err := f.bills.CreateBill(ctx, "cajero1", req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// QuoteBill
// ──────────────────────────────────────────────────────────────────────────────

func TestQuoteBill_AcumulaPorProductoYNoModifica(t *testing.T) {
	f := newFixture(t)
	q, err := f.bills.QuoteBill(context.Background(), dto.CreateBillRequest{
		Items: []dto.BillItemRequest{
			{ProductID: "leche", Quantity: dec("600"), Unit: "ml"},
			{ProductID: "leche", Quantity: dec("0.5"), Unit: "liters"},
		},
	})
	require.NoError(t, err)
	require.Len(t, q.Items, 2)
	assert.True(t, q.Items[0].Stock.Available)
	assert.False(t, q.Items[1].Stock.Available)
	assert.Equal(t, "1.1 liters", q.Items[1].Stock.RequestedDisplay)
	assert.False(t, q.Available)
	assert.True(t, q.Total.Equal(dec("4620")), q.Total.String())
	assert.True(t, f.stock(t, "leche").Equal(dec("1")))
}
