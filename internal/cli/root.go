package cli

import (
	"context"
	"fmt"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/handysync"
	"github.com/jhoicas/handy-sync/internal/bootstrap"
	"github.com/jhoicas/handy-sync/internal/infrastructure/postgres"
	"github.com/jhoicas/handy-sync/pkg/config"
	"github.com/jhoicas/handy-sync/pkg/logger"
	"github.com/spf13/cobra"
)

// Nombres de los subcomandos de sincronización.
const (
	CmdCustomers  = "customers"
	CmdProducts   = "products"
	CmdPriceLists = "price-lists"
	CmdQuantities = "quantities"
)

// Deps lo que necesitan los subcomandos. Close libera conexiones.
// CreateWarehouse devuelve created=false si la bodega ya existía.
type Deps struct {
	Jobs            map[string]handysync.Job
	Migrate         func(ctx context.Context) ([]string, error)
	CreateUser      func(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error)
	CreateWarehouse func(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, bool, error)
	Close           func()
}

// Opener construye las dependencias a partir de la configuración del entorno.
type Opener func(ctx context.Context) (*Deps, error)

// RootOptions flags globales.
type RootOptions struct {
	Format string // "json" | "text"
	Open   Opener
}

// ValidFormats formatos de salida admitidos.
var ValidFormats = []string{"text", "json"}

// NewRootCommand crea el comando raíz. Si open es nil se usa la base de datos y la API configuradas.
func NewRootCommand(open Opener) *cobra.Command {
	if open == nil {
		open = openFromEnv
	}
	opts := &RootOptions{Open: open}

	cmd := &cobra.Command{
		Use:   "handysync",
		Short: "Sincronización ERP ↔ Handy",
		Long: `Ejecuta las operaciones de sincronización con Handy fuera del servidor HTTP,
pensado para cron externo. Cada corrida queda en handy_sync_runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("formato %q inválido: use uno de %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (json|text)")

	cmd.AddCommand(newSyncCommand(opts, CmdCustomers, "Importar clientes desde Handy"))
	cmd.AddCommand(newSyncCommand(opts, CmdProducts, "Importar productos desde Handy"))
	cmd.AddCommand(newSyncCommand(opts, CmdPriceLists, "Sincronizar listas de precios en ambos sentidos"))
	cmd.AddCommand(newSyncCommand(opts, CmdQuantities, "Publicar existencias en Handy"))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newCreateUserCommand(opts))
	cmd.AddCommand(newCreateWarehouseCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func openFromEnv(ctx context.Context) (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	app, err := bootstrap.New(ctx, cfg, log, false)
	if err != nil {
		return nil, err
	}
	return &Deps{
		Jobs: map[string]handysync.Job{
			CmdCustomers:  app.Customers.Execute,
			CmdProducts:   app.Products.Execute,
			CmdPriceLists: app.PriceLists.Execute,
			CmdQuantities: app.Quantities.Execute,
		},
		Migrate: func(ctx context.Context) ([]string, error) {
			return postgres.Migrate(ctx, app.Pool)
		},
		CreateUser:      app.Auth.RegisterUser,
		CreateWarehouse: app.Warehouses.Create,
		Close:           app.Close,
	}, nil
}
