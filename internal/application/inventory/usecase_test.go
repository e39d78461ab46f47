package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/inventory"
	"github.com/jhoicas/handy-sync/internal/domain"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type binKey struct{ item, wh string }

// memStore simula la BD: la tx trabaja sobre una copia y solo se publica en Commit.
type memStore struct {
	bins    map[binKey]decimal.Decimal
	entries map[string]*entity.StockEntry
}

func newMemStore() *memStore {
	return &memStore{bins: map[binKey]decimal.Decimal{}, entries: map[string]*entity.StockEntry{}}
}

func (s *memStore) qty(item, wh string) decimal.Decimal { return s.bins[binKey{item, wh}] }

type fakeTx struct{ store *memStore }

func (f *fakeTx) RunStockEntry(ctx context.Context, fn func(repository.StockEntryRepository, repository.BinRepository) error) error {
	work := &memStore{bins: map[binKey]decimal.Decimal{}, entries: map[string]*entity.StockEntry{}}
	for k, v := range f.store.bins {
		work.bins[k] = v
	}
	if err := fn(entryRepo{work}, binRepo{work}); err != nil {
		return err
	}
	f.store.bins = work.bins
	for k, v := range work.entries {
		f.store.entries[k] = v
	}
	return nil
}

type entryRepo struct{ s *memStore }

func (r entryRepo) Create(_ context.Context, e *entity.StockEntry) error {
	r.s.entries[e.ID] = e
	return nil
}
func (r entryRepo) GetByID(_ context.Context, id string) (*entity.StockEntry, error) {
	return r.s.entries[id], nil
}

type binRepo struct{ s *memStore }

func (r binRepo) GetForUpdate(_ context.Context, item, wh string) (*entity.Bin, error) {
	return &entity.Bin{ItemCode: item, Warehouse: wh, ActualQty: r.s.bins[binKey{item, wh}]}, nil
}
func (r binRepo) Upsert(_ context.Context, b *entity.Bin) error {
	r.s.bins[binKey{b.ItemCode, b.Warehouse}] = b.ActualQty
	return nil
}
func (r binRepo) ListByWarehouse(context.Context, string) ([]*entity.Bin, error) { return nil, nil }

type fakeItems map[string]bool

func (f fakeItems) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	if f[code] {
		return &entity.Item{ItemCode: code}, nil
	}
	return nil, nil
}
func (f fakeItems) Upsert(context.Context, *entity.Item) (bool, error) { return false, nil }

type fakeWarehouses map[string]bool

func (f fakeWarehouses) Create(_ context.Context, w *entity.Warehouse) (bool, error) {
	if f[w.Name] {
		return false, nil
	}
	f[w.Name] = true
	return true, nil
}

func (f fakeWarehouses) List(context.Context) ([]*entity.Warehouse, error) {
	names := make([]string, 0, len(f))
	for n := range f {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*entity.Warehouse, 0, len(names))
	for _, n := range names {
		out = append(out, &entity.Warehouse{Name: n})
	}
	return out, nil
}

func (f fakeWarehouses) GetByName(_ context.Context, name string) (*entity.Warehouse, error) {
	if f[name] {
		return &entity.Warehouse{Name: name}, nil
	}
	return nil, nil
}

type recordingHook struct {
	calls []*entity.StockEntry
	err   error
}

func (h *recordingHook) OnStockEntrySubmit(_ context.Context, e *entity.StockEntry) error {
	h.calls = append(h.calls, e)
	return h.err
}

func newUseCase(store *memStore, hooks ...inventory.StockEntryHook) *inventory.SubmitStockEntryUseCase {
	return inventory.NewSubmitStockEntryUseCase(
		&fakeTx{store: store},
		fakeItems{"P1": true, "P2": true},
		fakeWarehouses{"Bodega - D": true, "Ruta 227 - D": true},
		zerolog.Nop(),
		hooks...,
	)
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_TransferMueveExistenciasYLlamaHook(t *testing.T) {
	store := newMemStore()
	store.bins[binKey{"P1", "Bodega - D"}] = d(10)
	hook := &recordingHook{}
	uc := newUseCase(store, hook)

	entry := &entity.StockEntry{
		Purpose: entity.PurposeMaterialTransfer,
		Items: []entity.StockEntryItem{
			{ItemCode: "P1", Qty: d(4), SWarehouse: "Bodega - D", TWarehouse: "Ruta 227 - D"},
		},
	}
	require.NoError(t, uc.Submit(context.Background(), entry))

	assert.True(t, d(6).Equal(store.qty("P1", "Bodega - D")))
	assert.True(t, d(4).Equal(store.qty("P1", "Ruta 227 - D")))
	require.Len(t, hook.calls, 1)
	assert.Equal(t, entry.ID, hook.calls[0].ID)
	assert.Contains(t, store.entries, entry.ID)
}

func TestSubmit_HookFallaRevierteTodo(t *testing.T) {
	store := newMemStore()
	store.bins[binKey{"P1", "Bodega - D"}] = d(10)
	hookErr := errors.New("handy caído")
	uc := newUseCase(store, &recordingHook{err: hookErr})

	err := uc.Submit(context.Background(), &entity.StockEntry{
		Purpose: entity.PurposeMaterialTransfer,
		Items:   []entity.StockEntryItem{{ItemCode: "P1", Qty: d(4), SWarehouse: "Bodega - D", TWarehouse: "Ruta 227 - D"}},
	})
	assert.ErrorIs(t, err, hookErr)
	assert.True(t, d(10).Equal(store.qty("P1", "Bodega - D")), "la existencia no debe cambiar")
	assert.True(t, store.qty("P1", "Ruta 227 - D").IsZero())
	assert.Empty(t, store.entries)
}

func TestSubmit_IssueSinStockSuficiente(t *testing.T) {
	store := newMemStore()
	store.bins[binKey{"P1", "Bodega - D"}] = d(1)
	uc := newUseCase(store)

	err := uc.Submit(context.Background(), &entity.StockEntry{
		Purpose: entity.PurposeMaterialIssue,
		Items:   []entity.StockEntryItem{{ItemCode: "P1", Qty: d(2), SWarehouse: "Bodega - D"}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, d(1).Equal(store.qty("P1", "Bodega - D")))
}

func TestSubmit_ReceiptSuma(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store)

	err := uc.Submit(context.Background(), &entity.StockEntry{
		Purpose: entity.PurposeMaterialReceipt,
		Items: []entity.StockEntryItem{
			{ItemCode: "P1", Qty: d(3), TWarehouse: "Bodega - D"},
			{ItemCode: "P1", Qty: d(2), TWarehouse: "Bodega - D"},
		},
	})
	require.NoError(t, err)
	assert.True(t, d(5).Equal(store.qty("P1", "Bodega - D")))
}

func TestSubmit_Validaciones(t *testing.T) {
	uc := newUseCase(newMemStore())
	cases := []struct {
		name  string
		entry *entity.StockEntry
		want  error
	}{
		{"sin líneas", &entity.StockEntry{Purpose: entity.PurposeMaterialReceipt}, domain.ErrInvalidInput},
		{"propósito desconocido", &entity.StockEntry{Purpose: "Repack",
			Items: []entity.StockEntryItem{{ItemCode: "P1", Qty: d(1), TWarehouse: "Bodega - D"}}}, domain.ErrInvalidInput},
		{"cantidad cero", &entity.StockEntry{Purpose: entity.PurposeMaterialReceipt,
			Items: []entity.StockEntryItem{{ItemCode: "P1", Qty: d(0), TWarehouse: "Bodega - D"}}}, domain.ErrInvalidInput},
		{"transfer misma bodega", &entity.StockEntry{Purpose: entity.PurposeMaterialTransfer,
			Items: []entity.StockEntryItem{{ItemCode: "P1", Qty: d(1), SWarehouse: "Bodega - D", TWarehouse: "Bodega - D"}}}, domain.ErrInvalidInput},
		{"artículo inexistente", &entity.StockEntry{Purpose: entity.PurposeMaterialReceipt,
			Items: []entity.StockEntryItem{{ItemCode: "NOPE", Qty: d(1), TWarehouse: "Bodega - D"}}}, domain.ErrNotFound},
		{"bodega inexistente", &entity.StockEntry{Purpose: entity.PurposeMaterialReceipt,
			Items: []entity.StockEntryItem{{ItemCode: "P1", Qty: d(1), TWarehouse: "Ruta 999 - D"}}}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, uc.Submit(context.Background(), tc.entry), tc.want)
		})
	}
}

func TestSubmitFromRequest_MapeaLineas(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store)

	res, err := uc.SubmitFromRequest(context.Background(), "user-1", dto.SubmitStockEntryRequest{
		Purpose: entity.PurposeMaterialReceipt,
		Items:   []dto.StockEntryItemRequest{{ItemCode: "P2", Qty: d(7), TWarehouse: "Bodega - D"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Items)
	assert.Equal(t, "user-1", store.entries[res.ID].CreatedBy)
	assert.True(t, d(7).Equal(store.qty("P2", "Bodega - D")))
}

func TestStockEntryQuery_GetByID(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(store)
	res, err := uc.SubmitFromRequest(context.Background(), "user-1", dto.SubmitStockEntryRequest{
		Purpose: entity.PurposeMaterialReceipt,
		Remarks: "compra semanal",
		Items: []dto.StockEntryItemRequest{
			{ItemCode: "P1", Qty: d(2), TWarehouse: "Bodega - D"},
			{ItemCode: "P2", Qty: d(3), TWarehouse: "Bodega - D"},
		},
	})
	require.NoError(t, err)

	q := inventory.NewStockEntryQuery(entryRepo{store})
	out, err := q.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, "compra semanal", out.Remarks)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "P1", out.Items[0].ItemCode)
	assert.Equal(t, "P2", out.Items[1].ItemCode)

	_, err = q.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = q.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// uuidStrictRepo rechaza ids que no son UUID, igual que una columna uuid de PostgreSQL.
type uuidStrictRepo struct{ entryRepo }

func (r uuidStrictRepo) GetByID(ctx context.Context, id string) (*entity.StockEntry, error) {
	if len(id) != 36 {
		return nil, fmt.Errorf("ERROR: invalid input syntax for type uuid: %q", id)
	}
	return r.entryRepo.GetByID(ctx, id)
}

func TestStockEntryQuery_IDNoUUIDEsNoEncontrado(t *testing.T) {
	q := inventory.NewStockEntryQuery(uuidStrictRepo{entryRepo{newMemStore()}})
	for _, id := range []string{"abc", "se-1", "1 OR 1=1"} {
		_, err := q.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)
	}
}

func TestWarehouseUseCase_CreaYEsIdempotente(t *testing.T) {
	repo := fakeWarehouses{}
	uc := inventory.NewWarehouseUseCase(repo)

	out, created, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "  Ruta 227 - D "})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Ruta 227 - D", out.Name)

	_, created, err = uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Ruta 227 - D"})
	require.NoError(t, err)
	assert.False(t, created)

	_, _, err = uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Bodega - D"})
	require.NoError(t, err)
	list, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Bodega - D", list.Items[0].Name)
	assert.Equal(t, "Ruta 227 - D", list.Items[1].Name)
}

func TestWarehouseUseCase_BodegaCreadaHabilitaElTraslado(t *testing.T) {
	store := newMemStore()
	store.bins[binKey{"P1", "Bodega - D"}] = d(10)
	wh := fakeWarehouses{"Bodega - D": true}
	hook := &recordingHook{}
	uc := inventory.NewSubmitStockEntryUseCase(&fakeTx{store: store}, fakeItems{"P1": true}, wh, zerolog.Nop(), hook)
	transfer := &entity.StockEntry{
		Purpose: entity.PurposeMaterialTransfer,
		Items:   []entity.StockEntryItem{{ItemCode: "P1", Qty: d(4), SWarehouse: "Bodega - D", TWarehouse: "Ruta 227 - D"}},
	}

	assert.ErrorIs(t, uc.Submit(context.Background(), transfer), domain.ErrNotFound)

	_, _, err := inventory.NewWarehouseUseCase(wh).Create(context.Background(), dto.CreateWarehouseRequest{Name: "Ruta 227 - D"})
	require.NoError(t, err)
	require.NoError(t, uc.Submit(context.Background(), transfer))
	assert.True(t, d(4).Equal(store.qty("P1", "Ruta 227 - D")))
	require.Len(t, hook.calls, 1)
}
