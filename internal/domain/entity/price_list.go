package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceList lista de precios; Name coincide con el code de la lista en Handy.
type PriceList struct {
	Name      string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemPrice precio de un artículo dentro de una lista.
type ItemPrice struct {
	PriceList string
	ItemCode  string
	Rate      decimal.Decimal
	UpdatedAt time.Time
}
