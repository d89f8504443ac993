package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/billing"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	pkgjwt "github.com/jhoicas/Tienda-api/pkg/jwt"
)

// newTestApp arma la API completa sobre el store en memoria, como en cmd/api.
func newTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store, err := memory.NewStore("")
	require.NoError(t, err)
	repos := store.Repos()
	log := logger.Nop()

	stockUC := inventory.NewStockUseCase(repos.Products, false)
	productUC := usecase.NewProductUseCase(store, repos.Products, usecase.ProductSettings{
		LowStockThreshold:   decimal.NewFromInt(10),
		ExpiryDaysThreshold: 3,
	})
	admin, err := auth.NewAccount("admin", "secreto123", "", entity.RoleAdmin)
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:        productUC,
		UnitsUC:          usecase.NewUnitsUseCase(stockUC),
		DashboardUC:      usecase.NewDashboardUseCase(productUC, repos.Products, repos.Customers, repos.Bills, repos.Activities),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store, repos.Movements, stockUC, log),
		PurchaseOrderUC:  inventory.NewPurchaseOrderUseCase(store, repos.PurchaseOrders, repos.Products, stockUC, log),
		CustomerUC:       billing.NewCustomerUseCase(store, repos.Customers, log),
		CreateBill:       billing.NewCreateBillUseCase(store, stockUC, repos.Products, repos.Bills, log),
		AuthUC:           auth.NewAuthUseCase(auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, admin),
		JWTSecret:        testJWTSecret,
	})
	return app, store
}

func seedProduct(t *testing.T, store *memory.Store, p *entity.Product) {
	t.Helper()
	require.NoError(t, store.Repos().Products.Create(context.Background(), p))
}

// call ejecuta una petición con body JSON opcional y token del rol indicado ("" = sin token).
func call(t *testing.T, app *fiber.App, method, path string, body any, role string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUsername, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}
