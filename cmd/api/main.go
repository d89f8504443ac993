package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/billing"
	"github.com/jhoicas/Tienda-api/internal/application/inventory"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage repositorios y runner transaccional del driver elegido.
type storage struct {
	tx    inventory.TxRunner
	repos repository.TxRepos
	close func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StoragePostgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("almacenamiento: PostgreSQL")
		return &storage{tx: postgres.NewTxRunner(pool), repos: postgres.NewRepos(pool), close: pool.Close}, nil
	}

	store, err := memory.NewStore(cfg.Storage.SnapshotPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("snapshot", cfg.Storage.SnapshotPath).Msg("almacenamiento: memoria")
	return &storage{tx: store, repos: store.Repos(), close: func() {}}, nil
}

func accounts(cfg config.AuthConfig) ([]entity.User, error) {
	admin, err := auth.NewAccount(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	list := []entity.User{admin}
	if cfg.CashierUsername != "" {
		cashier, err := auth.NewAccount(cfg.CashierUsername, cfg.CashierPassword, cfg.CashierPasswordHash, entity.RoleCajero)
		if err != nil {
			return nil, err
		}
		list = append(list, cashier)
	}
	return list, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		AppName: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	repos := st.repos
	stockUC := inventory.NewStockUseCase(repos.Products, cfg.Store.StrictUnits)
	registerMovementUC := inventory.NewRegisterMovementUseCase(st.tx, repos.Movements, stockUC, log)
	purchaseOrderUC := inventory.NewPurchaseOrderUseCase(st.tx, repos.PurchaseOrders, repos.Products, stockUC, log)
	customerUC := billing.NewCustomerUseCase(st.tx, repos.Customers, log)
	createBillUC := billing.NewCreateBillUseCase(st.tx, stockUC, repos.Products, repos.Bills, log)

	productUC := usecase.NewProductUseCase(st.tx, repos.Products, usecase.ProductSettings{
		StrictUnits:         cfg.Store.StrictUnits,
		LowStockThreshold:   decimal.NewFromInt(int64(cfg.Store.LowStockThreshold)),
		ExpiryDaysThreshold: cfg.Store.ExpiryDaysThreshold,
	})
	unitsUC := usecase.NewUnitsUseCase(stockUC)
	dashboardUC := usecase.NewDashboardUseCase(productUC, repos.Products, repos.Customers, repos.Bills, repos.Activities)

	accts, err := accounts(cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("cuentas de acceso")
	}
	authUC := auth.NewAuthUseCase(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, accts...)

	loginLimiter, err := httpRouter.RateLimit(cfg.HTTP.LoginRateLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("rate limit de login")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Tienda API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		UnitsUC:          unitsUC,
		DashboardUC:      dashboardUC,
		RegisterMovement: registerMovementUC,
		PurchaseOrderUC:  purchaseOrderUC,
		CustomerUC:       customerUC,
		CreateBill:       createBillUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
		LoginLimiter:     loginLimiter,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
