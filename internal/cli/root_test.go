package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/handysync"
)

type fakeDeps struct {
	ran     []string
	closed  int
	jobErr  error
	openErr error
	created dto.RegisterRequest
	whs     map[string]bool
}

func (f *fakeDeps) open(context.Context) (*Deps, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	job := func(name string) handysync.Job {
		return func(context.Context) (*dto.SyncResult, error) {
			f.ran = append(f.ran, name)
			if f.jobErr != nil {
				return &dto.SyncResult{Status: "error", Message: f.jobErr.Error()}, f.jobErr
			}
			return &dto.SyncResult{Status: "success", Message: "Se sincronizaron 2 clientes desde Handy.", Processed: 2, Created: 1, Updated: 1}, nil
		}
	}
	return &Deps{
		Jobs: map[string]handysync.Job{
			CmdCustomers:  job(CmdCustomers),
			CmdProducts:   job(CmdProducts),
			CmdPriceLists: job(CmdPriceLists),
			CmdQuantities: job(CmdQuantities),
		},
		Migrate: func(context.Context) ([]string, error) { return []string{"0001_init.sql"}, nil },
		CreateUser: func(_ context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
			f.created = in
			return &dto.UserResponse{ID: "u-1", Email: in.Email, Role: in.Role}, nil
		},
		CreateWarehouse: func(_ context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, bool, error) {
			if f.whs == nil {
				f.whs = map[string]bool{}
			}
			existed := f.whs[in.Name]
			f.whs[in.Name] = true
			return &dto.WarehouseResponse{Name: in.Name}, !existed, nil
		},
		Close: func() { f.closed++ },
	}, nil
}

func execute(t *testing.T, f *fakeDeps, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(f.open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(nil)
	for _, name := range []string{CmdCustomers, CmdProducts, CmdPriceLists, CmdQuantities, "migrate", "create-user", "create-warehouse"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestSync_SalidaTexto(t *testing.T) {
	f := &fakeDeps{}
	out, err := execute(t, f, CmdCustomers)
	require.NoError(t, err)
	assert.Equal(t, []string{CmdCustomers}, f.ran)
	assert.Equal(t, 1, f.closed)
	assert.Contains(t, out, "customers: success")
	assert.Contains(t, out, "Se sincronizaron 2 clientes desde Handy.")
	assert.Contains(t, out, "creados=1 actualizados=1")
}

func TestSync_SalidaJSON(t *testing.T) {
	f := &fakeDeps{}
	out, err := execute(t, f, "--format", "json", CmdPriceLists)
	require.NoError(t, err)

	var res dto.SyncResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "success", res.Status)
	assert.Equal(t, 2, res.Processed)
}

func TestSync_ErrorDevuelveCodigoDeFallo(t *testing.T) {
	f := &fakeDeps{jobErr: errors.New("Handy API error: GET /product: 500 boom")}
	out, err := execute(t, f, CmdProducts)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "products: error")
	assert.Equal(t, 1, f.closed)
}

func TestSync_FalloAlAbrir(t *testing.T) {
	f := &fakeDeps{openErr: errors.New("conexión a PostgreSQL: refused")}
	_, err := execute(t, f, CmdQuantities)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, f.ran)
}

func TestFormatoInvalido(t *testing.T) {
	f := &fakeDeps{}
	_, err := execute(t, f, "--format", "xml", CmdCustomers)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, f.ran)
}

func TestMigrate(t *testing.T) {
	out, err := execute(t, &fakeDeps{}, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "0001_init.sql")
}

func TestCreateUser(t *testing.T) {
	f := &fakeDeps{}
	out, err := execute(t, f, "create-user", "--email", "admin@example.com", "--password", "clave-segura")
	require.NoError(t, err)
	assert.Equal(t, "admin", f.created.Role)
	assert.Contains(t, out, "admin@example.com")

	_, err = execute(t, f, "create-user", "--email", "x@example.com", "--password", "corta")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = execute(t, f, "create-user", "--email", "x@example.com", "--password", "clave-segura", "--role", "root")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCreateWarehouse(t *testing.T) {
	f := &fakeDeps{}
	out, err := execute(t, f, "create-warehouse", "--name", "Ruta 227 - D")
	require.NoError(t, err)
	assert.Contains(t, out, "bodega Ruta 227 - D creada")

	out, err = execute(t, f, "create-warehouse", "--name", "Ruta 227 - D")
	require.NoError(t, err)
	assert.Contains(t, out, "ya existía")

	_, err = execute(t, f, "create-warehouse", "--name", "  ")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
