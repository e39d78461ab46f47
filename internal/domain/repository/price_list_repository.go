package repository

import (
	"context"

	"github.com/jhoicas/handy-sync/internal/domain/entity"
)

// PriceListRepository define el puerto para listas de precios y sus precios por artículo.
type PriceListRepository interface {
	List(ctx context.Context) ([]*entity.PriceList, error)
	Ensure(ctx context.Context, name string) (created bool, err error)
	ListItemPrices(ctx context.Context, priceList string) ([]*entity.ItemPrice, error)
	UpsertItemPrice(ctx context.Context, price *entity.ItemPrice) (created bool, err error)
}
