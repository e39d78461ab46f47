package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
)

var (
	_ repository.ItemRepository      = (*ItemRepo)(nil)
	_ repository.ItemGroupRepository = (*ItemGroupRepo)(nil)
	_ repository.UOMRepository       = (*UOMRepo)(nil)
)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByCode obtiene un artículo por código. Devuelve nil si no existe.
func (r *ItemRepo) GetByCode(ctx context.Context, itemCode string) (*entity.Item, error) {
	query := `
		SELECT item_code, item_name, stock_uom, standard_rate, barcode, item_group, created_at, updated_at
		FROM items WHERE item_code = $1`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, itemCode).Scan(
		&it.ItemCode, &it.ItemName, &it.StockUOM, &it.StandardRate, &it.Barcode, &it.ItemGroup,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Upsert crea el artículo o sobrescribe sus campos si el código ya existe.
func (r *ItemRepo) Upsert(ctx context.Context, it *entity.Item) (bool, error) {
	return upsertByKey(ctx, r.q, upsertSpec{
		Table: "items",
		Keys:  []column{{"item_code", it.ItemCode}},
		Fields: []column{
			{"item_name", it.ItemName},
			{"stock_uom", it.StockUOM},
			{"standard_rate", it.StandardRate},
			{"barcode", it.Barcode},
			{"item_group", it.ItemGroup},
		},
		Touch: true,
	})
}

// ItemGroupRepo grupos de artículos.
type ItemGroupRepo struct {
	q Querier
}

// NewItemGroupRepository construye el adaptador.
func NewItemGroupRepository(q Querier) *ItemGroupRepo {
	return &ItemGroupRepo{q: q}
}

// GetRoot devuelve el primer grupo sin padre, o "" si no hay ninguno.
func (r *ItemGroupRepo) GetRoot(ctx context.Context) (string, error) {
	var name string
	err := r.q.QueryRow(ctx,
		`SELECT name FROM item_groups WHERE parent_item_group = '' ORDER BY created_at, name LIMIT 1`,
	).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get root item group: %w", err)
	}
	return name, nil
}

// Ensure crea el grupo bajo parent si no existe. Un grupo existente conserva su padre.
func (r *ItemGroupRepo) Ensure(ctx context.Context, name, parent string) (bool, error) {
	return ensureByKey(ctx, r.q, upsertSpec{
		Table:    "item_groups",
		Keys:     []column{{"name", name}},
		OnInsert: []column{{"parent_item_group", parent}},
	})
}

// UOMRepo unidades de medida.
type UOMRepo struct {
	q Querier
}

// NewUOMRepository construye el adaptador.
func NewUOMRepository(q Querier) *UOMRepo {
	return &UOMRepo{q: q}
}

// Ensure crea la unidad si no existe.
func (r *UOMRepo) Ensure(ctx context.Context, name string) (bool, error) {
	return ensureByKey(ctx, r.q, upsertSpec{Table: "uoms", Keys: []column{{"name", name}}})
}
