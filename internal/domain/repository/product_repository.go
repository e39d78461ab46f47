package repository

import (
	"context"

	"github.com/jhoicas/handy-sync/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para artículos (DIP).
type ItemRepository interface {
	GetByCode(ctx context.Context, itemCode string) (*entity.Item, error)
	// Upsert crea el artículo o sobrescribe sus campos si el código ya existe.
	Upsert(ctx context.Context, item *entity.Item) (created bool, err error)
}

// ItemGroupRepository define el puerto para grupos de artículos.
type ItemGroupRepository interface {
	// GetRoot devuelve el nombre del grupo raíz (sin padre) o "" si no existe.
	GetRoot(ctx context.Context) (string, error)
	Ensure(ctx context.Context, name, parent string) (created bool, err error)
}

// UOMRepository define el puerto para unidades de medida.
type UOMRepository interface {
	Ensure(ctx context.Context, name string) (created bool, err error)
}
