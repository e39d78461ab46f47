package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntryItemRequest línea del documento de stock.
type StockEntryItemRequest struct {
	ItemCode   string          `json:"item_code" validate:"required"`
	Qty        decimal.Decimal `json:"qty"`
	SWarehouse string          `json:"s_warehouse,omitempty"`
	TWarehouse string          `json:"t_warehouse,omitempty"`
}

// SubmitStockEntryRequest body para POST /api/stock-entries.
type SubmitStockEntryRequest struct {
	Purpose string                  `json:"purpose" validate:"required,oneof='Material Transfer' 'Material Receipt' 'Material Issue'"`
	Remarks string                  `json:"remarks" validate:"max=500"`
	Items   []StockEntryItemRequest `json:"items" validate:"required,min=1,dive"`
}

// StockEntryResponse documento registrado.
type StockEntryResponse struct {
	ID      string `json:"id"`
	Purpose string `json:"purpose"`
	Items   int    `json:"items"`
}

// StockEntryItemResponse línea del documento consultado.
type StockEntryItemResponse struct {
	ItemCode   string          `json:"item_code"`
	Qty        decimal.Decimal `json:"qty"`
	SWarehouse string          `json:"s_warehouse,omitempty"`
	TWarehouse string          `json:"t_warehouse,omitempty"`
}

// StockEntryDetailResponse salida de GET /api/stock-entries/:id.
type StockEntryDetailResponse struct {
	ID        string                   `json:"id"`
	Purpose   string                   `json:"purpose"`
	Remarks   string                   `json:"remarks,omitempty"`
	CreatedBy string                   `json:"created_by,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	Items     []StockEntryItemResponse `json:"items"`
}

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name string `json:"name" validate:"required,max=140"`
}

// WarehouseResponse bodega.
type WarehouseResponse struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// WarehouseListResponse salida de GET /api/warehouses.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
}
