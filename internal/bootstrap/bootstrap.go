package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/handy-sync/internal/application/auth"
	"github.com/jhoicas/handy-sync/internal/application/handysync"
	"github.com/jhoicas/handy-sync/internal/application/inventory"
	"github.com/jhoicas/handy-sync/internal/infrastructure/handy"
	"github.com/jhoicas/handy-sync/internal/infrastructure/metrics"
	"github.com/jhoicas/handy-sync/internal/infrastructure/postgres"
	"github.com/jhoicas/handy-sync/pkg/config"
	"github.com/jhoicas/handy-sync/pkg/logger"
)

// App agrupa los casos de uso ya cableados. Lo comparten el servidor HTTP y la CLI.
type App struct {
	Pool    *pgxpool.Pool
	Metrics *metrics.Metrics

	Auth     *auth.AuthUseCase
	Settings *handysync.SettingsUseCase
	Recorder *handysync.Recorder

	Customers  *handysync.SyncCustomersUseCase
	Products   *handysync.SyncProductsUseCase
	PriceLists *handysync.SyncPriceListsUseCase
	Quantities *handysync.PushQuantitiesUseCase
	Routes     *handysync.ReplenishRoutesUseCase

	SubmitStockEntry *inventory.SubmitStockEntryUseCase
	StockEntries     *inventory.StockEntryQuery
	Warehouses       *inventory.WarehouseUseCase
}

// New abre el pool, aplica migraciones si se pide y construye todas las dependencias.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, migrate bool) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if migrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		if len(applied) > 0 {
			log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
		}
	}

	m := metrics.New("handysync")

	client, err := handy.New(handy.Options{
		BaseURL:       cfg.Handy.BaseURL,
		PageSize:      cfg.Handy.PageSize,
		MaxPages:      cfg.Handy.MaxPages,
		Timeout:       cfg.Handy.Timeout,
		RatePerMinute: cfg.Handy.RatePerMinute,
		PageRetries:   cfg.Handy.PageRetries,
		RetryBackoff:  cfg.Handy.RetryBackoff,
		Observer:      m,
		Logger:        log.Component("handy"),
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("cliente Handy: %w", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	settingsRepo := postgres.NewHandySettingsRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	customerGroupRepo := postgres.NewCustomerGroupRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	itemGroupRepo := postgres.NewItemGroupRepository(pool)
	uomRepo := postgres.NewUOMRepository(pool)
	priceListRepo := postgres.NewPriceListRepository(pool)
	binRepo := postgres.NewBinRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockEntryRepo := postgres.NewStockEntryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	syncLog := log.Component("handysync")
	rec := handysync.NewRecorder(postgres.NewSyncRunRepository(pool), postgres.NewErrorLogRepository(pool), m, syncLog)
	creds := handysync.NewCredentialsProvider(settingsRepo, cfg.Handy.APIKey)

	routes := handysync.NewReplenishRoutesUseCase(client, creds, handysync.RouteConfig{
		WatchedWarehouses: cfg.Sync.WatchedWarehouses,
		SuffixSep:         cfg.Sync.WarehouseSuffixSep,
	}, rec, syncLog)

	return &App{
		Pool:     pool,
		Metrics:  m,
		Auth:     auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer}),
		Settings: handysync.NewSettingsUseCase(settingsRepo),
		Recorder: rec,

		Customers:  handysync.NewSyncCustomersUseCase(client, creds, customerRepo, customerGroupRepo, cfg.Sync.DefaultCustomerGroup, rec, syncLog),
		Products:   handysync.NewSyncProductsUseCase(client, creds, itemRepo, itemGroupRepo, uomRepo, rec, syncLog),
		PriceLists: handysync.NewSyncPriceListsUseCase(client, creds, priceListRepo, itemRepo, rec, syncLog),
		Quantities: handysync.NewPushQuantitiesUseCase(client, creds, binRepo, cfg.Sync.StockWarehouse, rec, syncLog),
		Routes:     routes,

		SubmitStockEntry: inventory.NewSubmitStockEntryUseCase(txRunner, itemRepo, warehouseRepo, log.Component("inventory"), routes),
		StockEntries:     inventory.NewStockEntryQuery(stockEntryRepo),
		Warehouses:       inventory.NewWarehouseUseCase(warehouseRepo),
	}, nil
}

// Close libera el pool.
func (a *App) Close() {
	a.Pool.Close()
}
