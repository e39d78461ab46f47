package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto del artículo sincronizado desde Handy.
const (
	DefaultItemName = "No name"
	DefaultUOM      = "Unidad"
)

// Item representa un artículo del inventario; ItemCode es el código de producto en Handy.
type Item struct {
	ItemCode     string
	ItemName     string
	StockUOM     string
	StandardRate decimal.Decimal
	Barcode      string
	ItemGroup    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ItemGroup categoría jerárquica de artículos. ParentItemGroup vacío = raíz.
type ItemGroup struct {
	Name            string
	ParentItemGroup string
	CreatedAt       time.Time
}

// UOM unidad de medida, identificada por nombre (código de unidad en Handy).
type UOM struct {
	Name      string
	CreatedAt time.Time
}
