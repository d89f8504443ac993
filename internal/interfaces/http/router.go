package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/billing"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	UnitsUC          *usecase.UnitsUseCase
	DashboardUC      *usecase.DashboardUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	PurchaseOrderUC  *inventory.PurchaseOrderUseCase
	CustomerUC       *billing.CustomerUseCase
	CreateBill       *billing.CreateBillUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
	// LoginLimiter opcional; nil desactiva el límite de intentos.
	LoginLimiter fiber.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	if deps.LoginLimiter != nil {
		api.Post("/auth/login", deps.LoginLimiter, authHandler.Login)
	} else {
		api.Post("/auth/login", authHandler.Login)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleCajero)

	// Units
	units := protected.Group("/units")
	unitsHandler := NewUnitsHandler(deps.UnitsUC)
	units.Get("/", unitsHandler.List)
	units.Post("/convert", unitsHandler.Convert)
	units.Post("/quote", unitsHandler.Quote)

	// Products (lectura para todos, escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/expiring", productHandler.Expiring)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Bills
	bills := protected.Group("/bills", staff)
	billHandler := NewBillHandler(deps.CreateBill)
	bills.Post("/quote", billHandler.Quote)
	bills.Post("/", billHandler.Create)
	bills.Get("/", billHandler.List)
	bills.Get("/:id", billHandler.GetByID)

	// Customers
	customers := protected.Group("/customers", staff)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/:id/payments", customerHandler.RecordPayment)

	// Inventory movements
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/movements", adminOnly, inventoryHandler.RegisterMovement)

	// Purchase orders (solo admin)
	pos := protected.Group("/purchase-orders", adminOnly)
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	pos.Post("/", poHandler.Create)
	pos.Get("/", poHandler.List)
	pos.Get("/:id", poHandler.GetByID)
	pos.Post("/:id/receive", poHandler.Receive)
	pos.Post("/:id/cancel", poHandler.Cancel)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
}
