package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
)

var _ repository.PriceListRepository = (*PriceListRepo)(nil)

// PriceListRepo listas de precios y precios por artículo.
type PriceListRepo struct {
	q Querier
}

// NewPriceListRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceListRepository(q Querier) *PriceListRepo {
	return &PriceListRepo{q: q}
}

// List devuelve todas las listas de precios ordenadas por nombre.
func (r *PriceListRepo) List(ctx context.Context) ([]*entity.PriceList, error) {
	rows, err := r.q.Query(ctx, `SELECT name, enabled, created_at, updated_at FROM price_lists ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list price lists: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceList
	for rows.Next() {
		var pl entity.PriceList
		if err := rows.Scan(&pl.Name, &pl.Enabled, &pl.CreatedAt, &pl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price list: %w", err)
		}
		list = append(list, &pl)
	}
	return list, rows.Err()
}

// Ensure crea la lista (habilitada) si no existe.
func (r *PriceListRepo) Ensure(ctx context.Context, name string) (bool, error) {
	return ensureByKey(ctx, r.q, upsertSpec{
		Table:    "price_lists",
		Keys:     []column{{"name", name}},
		OnInsert: []column{{"enabled", true}},
	})
}

// ListItemPrices precios de una lista, ordenados por código de artículo.
func (r *PriceListRepo) ListItemPrices(ctx context.Context, priceList string) ([]*entity.ItemPrice, error) {
	query := `
		SELECT price_list, item_code, rate, updated_at
		FROM item_prices WHERE price_list = $1 ORDER BY item_code`
	rows, err := r.q.Query(ctx, query, priceList)
	if err != nil {
		return nil, fmt.Errorf("list item prices: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemPrice
	for rows.Next() {
		var p entity.ItemPrice
		if err := rows.Scan(&p.PriceList, &p.ItemCode, &p.Rate, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item price: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpsertItemPrice crea o actualiza el precio de un artículo en la lista.
func (r *PriceListRepo) UpsertItemPrice(ctx context.Context, p *entity.ItemPrice) (bool, error) {
	return upsertByKey(ctx, r.q, upsertSpec{
		Table:  "item_prices",
		Keys:   []column{{"price_list", p.PriceList}, {"item_code", p.ItemCode}},
		Fields: []column{{"rate", p.Rate}},
		Touch:  true,
	})
}
