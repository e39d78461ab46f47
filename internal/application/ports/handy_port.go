package ports

import (
	"context"

	"github.com/jhoicas/handy-sync/internal/application/dto"
)

// Credentials credencial de Handy resuelta para una invocación. Se pasa explícitamente
// a cada llamada remota; no hay estado global.
type Credentials struct {
	APIKey string
}

// HandyClient puerto hacia la API REST de Handy.
// Los listados paginados recorren todas las páginas; ForEach* entrega página por página.
type HandyClient interface {
	ForEachCustomerPage(ctx context.Context, cred Credentials, fn func([]dto.HandyCustomer) error) error
	ForEachProductPage(ctx context.Context, cred Credentials, fn func([]dto.HandyProduct) error) error
	ListProducts(ctx context.Context, cred Credentials) ([]dto.HandyProduct, error)
	ListPriceLists(ctx context.Context, cred Credentials) ([]dto.HandyPriceList, error)
	CreatePriceList(ctx context.Context, cred Credentials, payload dto.PriceListPayload) error
	UpdatePriceList(ctx context.Context, cred Credentials, id int64, payload dto.PriceListPayload) error
	ListOpenRoutes(ctx context.Context, cred Credentials) ([]dto.HandyRoute, error)
	FindUsersByName(ctx context.Context, cred Credentials, name string) ([]dto.HandyUser, error)
	CreateRoute(ctx context.Context, cred Credentials, userID int64, payload dto.CreateRoutePayload) error
	RechargeRoute(ctx context.Context, cred Credentials, userID int64, payload dto.RechargeRoutePayload) error
	UpdateProductQuantity(ctx context.Context, cred Credentials, code string, payload dto.ProductQuantityPayload) error
}
