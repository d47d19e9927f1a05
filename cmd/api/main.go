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

	"github.com/comprint/mualish-plus-api/internal/application/auth"
	"github.com/comprint/mualish-plus-api/internal/application/inventory"
	"github.com/comprint/mualish-plus-api/internal/application/sales"
	"github.com/comprint/mualish-plus-api/internal/application/service"
	"github.com/comprint/mualish-plus-api/internal/application/usecase"
	infrapdf "github.com/comprint/mualish-plus-api/internal/infrastructure/pdf"
	"github.com/comprint/mualish-plus-api/internal/infrastructure/postgres"
	infrastorage "github.com/comprint/mualish-plus-api/internal/infrastructure/storage"
	httpRouter "github.com/comprint/mualish-plus-api/internal/interfaces/http"
	"github.com/comprint/mualish-plus-api/pkg/config"
	"github.com/comprint/mualish-plus-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	commissionRepo := postgres.NewCommissionRepository(pool)
	serviceRepo := postgres.NewServiceRequestRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	attachmentStorage, err := infrastorage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Storage.BasePath).Msg("almacenamiento de adjuntos")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, branchRepo)
	branchUC := usecase.NewBranchUseCase(branchRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	inventoryUC := inventory.NewUseCase(inventoryRepo, productRepo)

	createSaleUC := sales.NewCreateSaleUseCase(txRunner, saleRepo, productRepo, customerRepo, userRepo)
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	saleUC := sales.NewUseCase(saleRepo, commissionRepo, customerRepo, productRepo, receiptGenerator)
	commissionUC := sales.NewCommissionUseCase(commissionRepo, saleRepo, log)

	serviceUC := service.NewUseCase(serviceRepo, customerRepo, userRepo, attachmentStorage, cfg.Storage.MaxSizeBytes)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Storage.MaxSizeBytes) + 1024*1024, // margen para el resto del multipart
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// Solo se monta si el swagger.json generado está presente.
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Mualish Plus API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, UI de docs deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		BranchUC:     branchUC,
		CategoryUC:   categoryUC,
		ProductUC:    productUC,
		CustomerUC:   customerUC,
		InventoryUC:  inventoryUC,
		CreateSale:   createSaleUC,
		SaleUC:       saleUC,
		CommissionUC: commissionUC,
		ServiceUC:    serviceUC,
		JWTSecret:    cfg.JWT.Secret,
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
