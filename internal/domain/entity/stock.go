package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bin representa la existencia actual de un artículo en una bodega.
type Bin struct {
	ItemCode  string
	Warehouse string
	ActualQty decimal.Decimal
	UpdatedAt time.Time
}
