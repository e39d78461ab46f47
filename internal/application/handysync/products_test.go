package handysync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/handysync"
	"github.com/jhoicas/handy-sync/internal/domain"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
)

func newProductsUC(h *harness) *handysync.SyncProductsUseCase {
	return handysync.NewSyncProductsUseCase(
		h.handy, h.creds, itemRepo{h.db}, itemGroupRepo{h.db}, uomRepo{h.db}, h.rec, zerolog.Nop(),
	)
}

func sampleProducts() [][]dto.HandyProduct {
	return [][]dto.HandyProduct{
		{
			{
				Code:        "P1",
				Description: strPtr("Jabón"),
				Price:       decPtr("12.50"),
				Barcode:     "750100",
				Unit:        &dto.HandyUnit{Code: "Caja"},
				Category:    &dto.HandyRef{Description: "Limpieza"},
			},
			{Code: "P2"},
		},
		{
			{Code: "P3", Unit: &dto.HandyUnit{Code: "Caja"}, Category: &dto.HandyRef{Description: "Limpieza"}},
		},
	}
}

func TestSyncProducts_SinGrupoRaizFallaAntesDeConsultar(t *testing.T) {
	h := newHarness()
	h.handy.productPages = sampleProducts()

	_, err := newProductsUC(h).Execute(context.Background())
	assert.ErrorIs(t, err, domain.ErrRootItemGroupMissing)
	assert.Zero(t, h.handy.calls)
	assert.Empty(t, h.db.items)
}

func TestSyncProducts_Error500EnPrimeraPaginaNoEscribe(t *testing.T) {
	h := newHarness()
	h.db.itemGroups["Todos los artículos"] = ""
	h.handy.fetchErr = errors.New("Handy API error: GET /product: 500 boom")

	res, err := newProductsUC(h).Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500 boom")
	assert.Zero(t, h.db.writes)
	assert.Empty(t, h.db.items)
	assert.Empty(t, h.db.uoms)
	assert.Equal(t, "error", res.Status)
	assert.Equal(t, 1, h.metrics.runs["products/error"])
}

func TestSyncProducts_MapeoYDependencias(t *testing.T) {
	h := newHarness()
	h.db.itemGroups["Todos los artículos"] = ""
	h.handy.productPages = sampleProducts()

	res, err := newProductsUC(h).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)

	p1 := h.db.items["P1"]
	assert.Equal(t, "Jabón", p1.ItemName)
	assert.Equal(t, "Caja", p1.StockUOM)
	assert.Equal(t, "12.5", p1.StandardRate.String())
	assert.Equal(t, "750100", p1.Barcode)
	assert.Equal(t, "Limpieza", p1.ItemGroup)

	p2 := h.db.items["P2"]
	assert.Equal(t, entity.DefaultItemName, p2.ItemName)
	assert.Equal(t, entity.DefaultUOM, p2.StockUOM)
	assert.True(t, p2.StandardRate.IsZero())
	assert.Equal(t, "Todos los artículos", p2.ItemGroup)

	assert.Equal(t, "Todos los artículos", h.db.itemGroups["Limpieza"], "grupo nuevo bajo la raíz")
	assert.True(t, h.db.uoms["Caja"])
	assert.True(t, h.db.uoms[entity.DefaultUOM])
}

func TestSyncProducts_Idempotente(t *testing.T) {
	h := newHarness()
	h.db.itemGroups["Todos los artículos"] = ""
	h.handy.productPages = sampleProducts()
	uc := newProductsUC(h)

	_, err := uc.Execute(context.Background())
	require.NoError(t, err)
	items, groups, uoms := len(h.db.items), len(h.db.itemGroups), len(h.db.uoms)

	res, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 3, res.Updated)
	assert.Len(t, h.db.items, items)
	assert.Len(t, h.db.itemGroups, groups)
	assert.Len(t, h.db.uoms, uoms)
}
