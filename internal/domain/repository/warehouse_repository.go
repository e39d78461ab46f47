package repository

import (
	"context"

	"github.com/jhoicas/handy-sync/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	// Create da de alta la bodega si no existe; created indica si se insertó.
	Create(ctx context.Context, w *entity.Warehouse) (created bool, err error)
	GetByName(ctx context.Context, name string) (*entity.Warehouse, error)
	List(ctx context.Context) ([]*entity.Warehouse, error)
}
