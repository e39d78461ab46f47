package cli

import (
	"fmt"
	"strings"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/spf13/cobra"
)

func newSyncCommand(opts *RootOptions, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.Open(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "inicialización", err)
			}
			defer deps.Close()

			job, ok := deps.Jobs[name]
			if !ok {
				return NewExitError(ExitCommandError, fmt.Sprintf("operación %q no disponible", name))
			}
			res, runErr := job(cmd.Context())
			if res != nil {
				if err := writeResult(cmd.OutOrStdout(), opts.Format, name, res); err != nil {
					return WrapExitError(ExitCommandError, "escribir salida", err)
				}
			}
			if runErr != nil {
				return WrapExitError(ExitFailure, name, runErr)
			}
			return nil
		},
	}
}

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplicar migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := opts.Open(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "inicialización", err)
			}
			defer deps.Close()

			applied, err := deps.Migrate(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "migraciones", err)
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "sin migraciones pendientes")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "aplicadas: %s\n", strings.Join(applied, ", "))
			return nil
		},
	}
}

type createUserOptions struct {
	email    string
	password string
	name     string
	role     string
}

// create-user permite dar de alta el primer admin, ya que /api/auth/register exige uno.
func newCreateUserCommand(opts *RootOptions) *cobra.Command {
	in := &createUserOptions{}
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Crear un usuario de la API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(in.password) < 8 {
				return NewExitError(ExitCommandError, "password debe tener al menos 8 caracteres")
			}
			switch in.role {
			case entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor:
			default:
				return NewExitError(ExitCommandError, fmt.Sprintf("rol %q inválido", in.role))
			}
			deps, err := opts.Open(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "inicialización", err)
			}
			defer deps.Close()

			user, err := deps.CreateUser(cmd.Context(), dto.RegisterRequest{
				Email:    in.email,
				Password: in.password,
				Name:     in.name,
				Role:     in.role,
			})
			if err != nil {
				return WrapExitError(ExitFailure, "crear usuario", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (%s, rol %s)\n", user.Email, user.ID, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.email, "email", "", "email del usuario (requerido)")
	cmd.Flags().StringVar(&in.password, "password", "", "password, mínimo 8 caracteres (requerido)")
	cmd.Flags().StringVar(&in.name, "name", "", "nombre visible")
	cmd.Flags().StringVar(&in.role, "role", "admin", "rol: admin|bodeguero|vendedor")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// create-warehouse da de alta bodegas (ej. "Ruta 227 - D") sin pasar por la API.
func newCreateWarehouseCommand(opts *RootOptions) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "create-warehouse",
		Short: "Crear una bodega",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return NewExitError(ExitCommandError, "--name es requerido")
			}
			deps, err := opts.Open(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "inicialización", err)
			}
			defer deps.Close()

			w, created, err := deps.CreateWarehouse(cmd.Context(), dto.CreateWarehouseRequest{Name: name})
			if err != nil {
				return WrapExitError(ExitFailure, "crear bodega", err)
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "bodega %s creada\n", w.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "bodega %s ya existía\n", w.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "nombre con sufijo de empresa (requerido)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
