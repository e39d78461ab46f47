package repository

import (
	"context"

	"github.com/jhoicas/handy-sync/internal/domain/entity"
)

// StockEntryRepository define el puerto de persistencia para documentos de stock.
type StockEntryRepository interface {
	Create(ctx context.Context, entry *entity.StockEntry) error
	GetByID(ctx context.Context, id string) (*entity.StockEntry, error)
}
