package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
)

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

// StockEntryRepo documentos de stock y sus líneas (usable con pool o tx).
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

// Create persiste el documento y sus líneas. Llamar dentro de una tx para que sea atómico.
func (r *StockEntryRepo) Create(ctx context.Context, entry *entity.StockEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	createdBy := (*string)(nil)
	if entry.CreatedBy != "" {
		createdBy = &entry.CreatedBy
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_entries (id, purpose, remarks, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.Purpose, entry.Remarks, createdBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock entry: %w", err)
	}
	for i, it := range entry.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO stock_entry_items (stock_entry_id, idx, item_code, qty, s_warehouse, t_warehouse)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			entry.ID, i+1, it.ItemCode, it.Qty, it.SWarehouse, it.TWarehouse,
		)
		if err != nil {
			return fmt.Errorf("create stock entry item %d: %w", i+1, err)
		}
	}
	return nil
}

// GetByID obtiene un documento con sus líneas en orden. Devuelve nil si no existe.
func (r *StockEntryRepo) GetByID(ctx context.Context, id string) (*entity.StockEntry, error) {
	var e entity.StockEntry
	var createdBy *string
	err := r.q.QueryRow(ctx, `
		SELECT id, purpose, remarks, created_by, created_at
		FROM stock_entries WHERE id = $1`, id,
	).Scan(&e.ID, &e.Purpose, &e.Remarks, &createdBy, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	if createdBy != nil {
		e.CreatedBy = *createdBy
	}

	rows, err := r.q.Query(ctx, `
		SELECT item_code, qty, s_warehouse, t_warehouse
		FROM stock_entry_items WHERE stock_entry_id = $1 ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("list stock entry items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.StockEntryItem
		if err := rows.Scan(&it.ItemCode, &it.Qty, &it.SWarehouse, &it.TWarehouse); err != nil {
			return nil, fmt.Errorf("scan stock entry item: %w", err)
		}
		e.Items = append(e.Items, it)
	}
	return &e, rows.Err()
}
