package repository

import (
	"context"

	"github.com/jhoicas/handy-sync/internal/domain/entity"
)

// BinRepository define el puerto para consultar/actualizar existencias por artículo+bodega.
// Usado dentro de transacciones para garantizar consistencia.
type BinRepository interface {
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); devuelve cantidad cero si no existe.
	GetForUpdate(ctx context.Context, itemCode, warehouse string) (*entity.Bin, error)
	Upsert(ctx context.Context, bin *entity.Bin) error
	ListByWarehouse(ctx context.Context, warehouse string) ([]*entity.Bin, error)
}
