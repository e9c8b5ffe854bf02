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

	_ "github.com/jhoicas/Importaciones-api/docs"
	"github.com/jhoicas/Importaciones-api/internal/application/procurement"
	infracache "github.com/jhoicas/Importaciones-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Importaciones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Importaciones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Importaciones-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/Importaciones-api/internal/interfaces/http"
	"github.com/jhoicas/Importaciones-api/pkg/config"
	"github.com/jhoicas/Importaciones-api/pkg/logger"
)

// @title                       Importaciones API
// @version                     1.0
// @description                 Órdenes de compra al exterior, costo aterrizado, lotes FIFO y billetera de proveedores.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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

	// Caché de lectura de órdenes (opcional). Si Redis no responde se sigue sin caché.
	var orderCache procurement.OrderCache
	if cfg.Redis.Enabled() {
		rdb, err := infracache.NewRedisClient(ctx, infracache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se continúa sin caché")
		} else {
			defer rdb.Close()
			orderCache = infracache.NewOrderCache(rdb, cfg.Procurement.OrderCacheTTL())
		}
	}

	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	batchRepo := postgres.NewInventoryBatchRepository(pool)
	walletRepo := postgres.NewSupplierWalletRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	procurementUC := procurement.NewProcurementUseCase(
		txRunner, orderRepo, batchRepo, walletRepo, productRepo, orderCache,
		log.WithComponent("procurement"),
		procurement.Config{
			OrderNumberPrefix: cfg.Procurement.OrderNumberPrefix,
			WalletNotesLimit:  cfg.Procurement.WalletNotesLimit,
		},
	)

	// Hoja de costeo (PDF) y estado de costos (XML con digest canónico)
	documentsUC := procurement.NewDocumentsUseCase(
		orderRepo, infrapdf.NewCostingPDFGenerator(), xmlexport.NewCostingStatementGenerator(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Importaciones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Procurement: procurementUC,
		Documents:   documentsUC,
		Logger:      log,
		JWTSecret:   cfg.JWT.Secret,
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
