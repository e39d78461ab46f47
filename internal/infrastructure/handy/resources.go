package handy

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/ports"
)

// ForEachCustomerPage GET /customer, página por página.
func (c *Client) ForEachCustomerPage(ctx context.Context, cred ports.Credentials, fn func([]dto.HandyCustomer) error) error {
	return forEachPage(ctx, c, cred, c.endpoint("/customer", c.listQuery()), "/customer", "customers", fn)
}

// ForEachProductPage GET /product, página por página.
func (c *Client) ForEachProductPage(ctx context.Context, cred ports.Credentials, fn func([]dto.HandyProduct) error) error {
	return forEachPage(ctx, c, cred, c.endpoint("/product", c.listQuery()), "/product", "products", fn)
}

// ListProducts catálogo completo de productos.
func (c *Client) ListProducts(ctx context.Context, cred ports.Credentials) ([]dto.HandyProduct, error) {
	return fetchAll[dto.HandyProduct](ctx, c, cred, c.endpoint("/product", c.listQuery()), "/product", "products")
}

// ListPriceLists índice completo de listas de precios.
func (c *Client) ListPriceLists(ctx context.Context, cred ports.Credentials) ([]dto.HandyPriceList, error) {
	return fetchAll[dto.HandyPriceList](ctx, c, cred, c.endpoint("/priceList", c.listQuery()), "/priceList", "priceLists")
}

// CreatePriceList POST /priceList.
func (c *Client) CreatePriceList(ctx context.Context, cred ports.Credentials, payload dto.PriceListPayload) error {
	_, err := c.do(ctx, cred, http.MethodPost, c.endpoint("/priceList", nil), "/priceList", payload,
		http.StatusOK, http.StatusCreated)
	return err
}

// UpdatePriceList PUT /priceList/{id}: reemplaza los artículos de la lista remota.
func (c *Client) UpdatePriceList(ctx context.Context, cred ports.Credentials, id int64, payload dto.PriceListPayload) error {
	path := "/priceList/" + strconv.FormatInt(id, 10)
	_, err := c.do(ctx, cred, http.MethodPut, c.endpoint(path, nil), "/priceList/{id}", payload,
		http.StatusOK, http.StatusCreated)
	return err
}

// ListOpenRoutes GET /route?closed=false, todas las páginas.
func (c *Client) ListOpenRoutes(ctx context.Context, cred ports.Credentials) ([]dto.HandyRoute, error) {
	q := c.listQuery()
	q.Set("closed", "false")
	return fetchAll[dto.HandyRoute](ctx, c, cred, c.endpoint("/route", q), "/route", "routes")
}

// FindUsersByName GET /user?name=.
func (c *Client) FindUsersByName(ctx context.Context, cred ports.Credentials, name string) ([]dto.HandyUser, error) {
	q := c.listQuery()
	q.Set("name", name)
	return fetchAll[dto.HandyUser](ctx, c, cred, c.endpoint("/user", q), "/user", "users")
}

// CreateRoute POST /user/{id}/route con los productos iniciales.
func (c *Client) CreateRoute(ctx context.Context, cred ports.Credentials, userID int64, payload dto.CreateRoutePayload) error {
	q := url.Values{}
	q.Set("prettyMessages", "true")
	path := fmt.Sprintf("/user/%d/route", userID)
	_, err := c.do(ctx, cred, http.MethodPost, c.endpoint(path, q), "/user/{id}/route", payload,
		http.StatusOK, http.StatusCreated)
	return err
}

// RechargeRoute POST /user/{id}/route/recharge: suma productos a la ruta abierta.
func (c *Client) RechargeRoute(ctx context.Context, cred ports.Credentials, userID int64, payload dto.RechargeRoutePayload) error {
	path := fmt.Sprintf("/user/%d/route/recharge", userID)
	_, err := c.do(ctx, cred, http.MethodPost, c.endpoint(path, nil), "/user/{id}/route/recharge", payload,
		http.StatusOK, http.StatusCreated)
	return err
}

// UpdateProductQuantity PUT /product/{code} con la existencia actual.
func (c *Client) UpdateProductQuantity(ctx context.Context, cred ports.Credentials, code string, payload dto.ProductQuantityPayload) error {
	path := "/product/" + url.PathEscape(code)
	_, err := c.do(ctx, cred, http.MethodPut, c.endpoint(path, nil), "/product/{code}", payload,
		http.StatusOK, http.StatusCreated)
	return err
}
