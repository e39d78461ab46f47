package handysync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/handysync"
	"github.com/jhoicas/handy-sync/internal/domain"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
)

func newRoutesUC(h *harness) *handysync.ReplenishRoutesUseCase {
	return handysync.NewReplenishRoutesUseCase(h.handy, h.creds, handysync.RouteConfig{
		WatchedWarehouses: []string{"Ruta 227", "Ruta 228", "Ruta 229", "Ruta 230", "Ruta 231"},
		SuffixSep:         " - ",
	}, h.rec, zerolog.Nop())
}

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func transferEntry() *entity.StockEntry {
	return &entity.StockEntry{
		ID:      "SE-1",
		Purpose: entity.PurposeMaterialTransfer,
		Items: []entity.StockEntryItem{
			{ItemCode: "P1", Qty: qty(5), SWarehouse: "Bodega - D", TWarehouse: "Ruta 227 - D"},
			{ItemCode: "P2", Qty: qty(1), SWarehouse: "Bodega - D", TWarehouse: "Ruta 228 - D"},
			{ItemCode: "P1", Qty: qty(2), SWarehouse: "Bodega - D", TWarehouse: "Ruta 227 - D"},
			{ItemCode: "P3", Qty: qty(9), SWarehouse: "Bodega - D", TWarehouse: "Tienda - D"},
		},
	}
}

func TestReplenish_UnaCreacionYUnaRecarga(t *testing.T) {
	h := newHarness()
	h.handy.routes = []dto.HandyRoute{
		{ID: 1, User: &dto.HandyUser{ID: 227, Name: "Ruta 227"}},
		{ID: 2, User: &dto.HandyUser{ID: 999, Name: "Otro vendedor"}},
	}
	h.handy.users["Ruta 228"] = []dto.HandyUser{{ID: 228, Name: "Ruta 228"}, {ID: 2280, Name: "Ruta 228"}}

	require.NoError(t, newRoutesUC(h).OnStockEntrySubmit(context.Background(), transferEntry()))

	require.Len(t, h.handy.recharges, 1)
	assert.Equal(t, int64(227), h.handy.recharges[0].UserID)
	assert.Equal(t, []dto.RouteProductPayload{{Product: "P1", Quantity: 7}}, h.handy.recharges[0].Payload.Products)

	require.Len(t, h.handy.createdRoutes, 1)
	created := h.handy.createdRoutes[0]
	assert.Equal(t, int64(228), created.UserID, "se usa la primera coincidencia")
	assert.Equal(t, []dto.RouteProductPayload{{Product: "P2", Quantity: 1}}, created.Payload.Products)
	assert.Equal(t, "Creado automaticamente para Ruta 228", created.Payload.Comments)
	assert.Zero(t, created.Payload.InitialAmount)
	assert.NotNil(t, created.Payload.SalesOrders)

	require.Len(t, h.db.runs, 1)
	assert.Equal(t, entity.SyncOpRoutes, h.db.runs[0].Operation)
	assert.Equal(t, 1, h.db.runs[0].Created)
	assert.Equal(t, 1, h.db.runs[0].Updated)
}

func TestReplenish_SoloTransferencias(t *testing.T) {
	h := newHarness()
	entry := transferEntry()
	entry.Purpose = entity.PurposeMaterialReceipt

	require.NoError(t, newRoutesUC(h).OnStockEntrySubmit(context.Background(), entry))
	assert.Zero(t, h.handy.calls)
	assert.Empty(t, h.db.runs)
}

func TestReplenish_SinBodegasVigiladasNoLlamaAHandy(t *testing.T) {
	h := newHarness()
	entry := &entity.StockEntry{
		Purpose: entity.PurposeMaterialTransfer,
		Items:   []entity.StockEntryItem{{ItemCode: "P1", Qty: qty(1), SWarehouse: "Bodega - D", TWarehouse: "Tienda - D"}},
	}
	require.NoError(t, newRoutesUC(h).OnStockEntrySubmit(context.Background(), entry))
	assert.Zero(t, h.handy.calls)
}

func TestReplenish_FalloDeRecargaNoEsFatal(t *testing.T) {
	h := newHarness()
	h.handy.routes = []dto.HandyRoute{
		{ID: 1, User: &dto.HandyUser{ID: 227, Name: "Ruta 227"}},
		{ID: 3, User: &dto.HandyUser{ID: 228, Name: "Ruta 228"}},
	}
	h.handy.rechargeErr = errors.New("Handy API error: POST /user/{id}/route/recharge: 500 boom")

	require.NoError(t, newRoutesUC(h).OnStockEntrySubmit(context.Background(), transferEntry()))
	assert.Len(t, h.db.errorLogs, 2)
	assert.Equal(t, 2, h.db.runs[0].Failed)
}

func TestReplenish_UsuarioInexistenteEsFatal(t *testing.T) {
	h := newHarness()
	err := newRoutesUC(h).OnStockEntrySubmit(context.Background(), transferEntry())
	assert.ErrorIs(t, err, domain.ErrRemoteUserNotFound)
	assert.Empty(t, h.handy.createdRoutes)
	assert.Equal(t, entity.SyncStatusError, h.db.runs[0].Status)
}

func TestReplenish_FalloAlCrearRutaEsFatal(t *testing.T) {
	h := newHarness()
	h.handy.users["Ruta 227"] = []dto.HandyUser{{ID: 227}}
	h.handy.createRouteErr = errors.New("Handy API error: POST /user/{id}/route: 422 nope")

	err := newRoutesUC(h).OnStockEntrySubmit(context.Background(), transferEntry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422 nope")
}

func TestReplenish_ErrorAlConsultarRutasEsFatal(t *testing.T) {
	h := newHarness()
	h.handy.fetchErr = errors.New("Handy API error: GET /route: 500 boom")

	err := newRoutesUC(h).OnStockEntrySubmit(context.Background(), transferEntry())
	require.Error(t, err)
	assert.Empty(t, h.handy.recharges)
	assert.Empty(t, h.handy.createdRoutes)
}
