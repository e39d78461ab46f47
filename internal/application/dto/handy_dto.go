package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Tipos del protocolo de la API REST de Handy (v2). Solo se declaran los campos que se sincronizan.

// HandyRef referencia {id, description} usada por zona y categoría.
type HandyRef struct {
	ID          *int64 `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
}

// HandyCustomer cliente tal como lo devuelve GET /customer.
type HandyCustomer struct {
	Code        string    `json:"code"`
	Description *string   `json:"description"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
	Enabled     *bool     `json:"enabled"`
	PaymentType string    `json:"paymentType"`
	CreditDays  int       `json:"creditDays"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Zone        *HandyRef `json:"zone"`
	Category    *HandyRef `json:"category"`
}

// HandyUnit unidad de medida de un producto.
type HandyUnit struct {
	Code string `json:"code"`
}

// HandyProduct producto tal como lo devuelve GET /product.
type HandyProduct struct {
	Code        string           `json:"code"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Barcode     string           `json:"barcode"`
	Unit        *HandyUnit       `json:"unit"`
	Category    *HandyRef        `json:"category"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
}

// HandyProductRef código de producto. Handy lo envía como string o como objeto {"code": ...}.
type HandyProductRef string

// UnmarshalJSON acepta ambas formas.
func (r *HandyProductRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*r = HandyProductRef(obj.Code)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = HandyProductRef(s)
	return nil
}

// HandyPriceListItem línea de una lista de precios remota.
type HandyPriceListItem struct {
	Product HandyProductRef `json:"product"`
	Price   decimal.Decimal `json:"price"`
}

// HandyPriceList lista de precios tal como la devuelve GET /priceList.
type HandyPriceList struct {
	ID    int64                `json:"id"`
	Code  string               `json:"code"`
	Name  string               `json:"name"`
	Items []HandyPriceListItem `json:"items"`
}

// HandyUser usuario (vendedor/ruta) de Handy.
type HandyUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// HandyRoute ruta abierta o cerrada; el dueño es un usuario.
type HandyRoute struct {
	ID     int64      `json:"id"`
	Closed bool       `json:"closed"`
	User   *HandyUser `json:"user"`
}

// Los payloads de escritura usan float64: Handy espera números JSON y decimal.Decimal
// se serializa como string.

// PriceListItemPayload línea {product, price} de POST/PUT /priceList.
type PriceListItemPayload struct {
	Product string  `json:"product"`
	Price   float64 `json:"price"`
}

// PriceListPayload cuerpo de POST /priceList y PUT /priceList/{id}.
type PriceListPayload struct {
	Name  string                 `json:"name"`
	Code  string                 `json:"code"`
	Items []PriceListItemPayload `json:"items"`
}

// RouteProductPayload línea {product, quantity} de rutas y recargas.
type RouteProductPayload struct {
	Product  string  `json:"product"`
	Quantity float64 `json:"quantity"`
}

// CreateRoutePayload cuerpo de POST /user/{id}/route.
type CreateRoutePayload struct {
	InitialAmount float64               `json:"initialAmount"`
	Comments      string                `json:"comments"`
	SalesOrders   []json.RawMessage     `json:"salesOrders"`
	Products      []RouteProductPayload `json:"products"`
}

// RechargeRoutePayload cuerpo de POST /user/{id}/route/recharge.
type RechargeRoutePayload struct {
	Products []RouteProductPayload `json:"products"`
}

// ProductQuantityPayload cuerpo de PUT /product/{code}.
type ProductQuantityPayload struct {
	Quantity float64 `json:"quantity"`
}
