package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.BinRepository = (*BinRepo)(nil)

// BinRepo implementación de BinRepository sobre PostgreSQL (usable con pool o tx).
type BinRepo struct {
	q Querier
}

// NewBinRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewBinRepository(q Querier) *BinRepo {
	return &BinRepo{q: q}
}

// Upsert inserta o actualiza la cantidad (por artículo y bodega).
func (r *BinRepo) Upsert(ctx context.Context, bin *entity.Bin) error {
	query := `
		INSERT INTO bins (item_code, warehouse, actual_qty, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_code, warehouse)
		DO UPDATE SET actual_qty = EXCLUDED.actual_qty, updated_at = now()`
	_, err := r.q.Exec(ctx, query, bin.ItemCode, bin.Warehouse, bin.ActualQty)
	if err != nil {
		return fmt.Errorf("upsert bin: %w", err)
	}
	return nil
}

// GetForUpdate obtiene la existencia y bloquea la fila (SELECT FOR UPDATE).
// Si no hay fila devuelve cantidad cero.
func (r *BinRepo) GetForUpdate(ctx context.Context, itemCode, warehouse string) (*entity.Bin, error) {
	query := `
		SELECT item_code, warehouse, actual_qty, updated_at
		FROM bins WHERE item_code = $1 AND warehouse = $2
		FOR UPDATE`
	var b entity.Bin
	err := r.q.QueryRow(ctx, query, itemCode, warehouse).Scan(&b.ItemCode, &b.Warehouse, &b.ActualQty, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Bin{ItemCode: itemCode, Warehouse: warehouse, ActualQty: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get bin for update: %w", err)
	}
	return &b, nil
}

// ListByWarehouse existencias de una bodega ordenadas por artículo.
func (r *BinRepo) ListByWarehouse(ctx context.Context, warehouse string) ([]*entity.Bin, error) {
	query := `
		SELECT item_code, warehouse, actual_qty, updated_at
		FROM bins WHERE warehouse = $1 ORDER BY item_code`
	rows, err := r.q.Query(ctx, query, warehouse)
	if err != nil {
		return nil, fmt.Errorf("list bins: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bin
	for rows.Next() {
		var b entity.Bin
		if err := rows.Scan(&b.ItemCode, &b.Warehouse, &b.ActualQty, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bin: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
