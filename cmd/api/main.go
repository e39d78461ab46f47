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
	_ "github.com/jhoicas/handy-sync/docs"
	"github.com/jhoicas/handy-sync/internal/application/handysync"
	"github.com/jhoicas/handy-sync/internal/bootstrap"
	httpRouter "github.com/jhoicas/handy-sync/internal/interfaces/http"
	"github.com/jhoicas/handy-sync/pkg/config"
	"github.com/jhoicas/handy-sync/pkg/logger"
)

// @title                       Handy Sync API
// @version                     1.0
// @description                 Sincronización entre el ERP y Handy: clientes, productos, listas de precios, rutas y existencias.
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
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	deps, err := bootstrap.New(ctx, cfg, log, true)
	if err != nil {
		log.Fatal().Err(err).Msg("inicialización")
	}
	defer deps.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Handy.Timeout * 4,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware(deps.Metrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Handy Sync API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := deps.Pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", httpRouter.MetricsEndpoint(deps.Metrics))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC: deps.Auth,
		Sync: httpRouter.SyncJobs{
			Customers:  deps.Customers.Execute,
			Products:   deps.Products.Execute,
			PriceLists: deps.PriceLists.Execute,
			Quantities: deps.Quantities.Execute,
		},
		SyncRuns:    deps.Recorder,
		Settings:    deps.Settings,
		StockSubmit: deps.SubmitStockEntry,
		StockQuery:  deps.StockEntries,
		Warehouses:  deps.Warehouses,
		JWTSecret:   cfg.JWT.Secret,
	})

	// Publicación periódica de existencias (HANDY_QUANTITY_SYNC_INTERVAL=0 la desactiva)
	go handysync.RunEvery(ctx, cfg.Sync.QuantitySyncInterval, "handy-quantities", deps.Quantities.Execute, log.Component("scheduler"))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
