package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Propósitos de una entrada de stock.
const (
	PurposeMaterialTransfer = "Material Transfer" // entre bodegas
	PurposeMaterialReceipt  = "Material Receipt"  // entrada
	PurposeMaterialIssue    = "Material Issue"    // salida
)

// StockEntry documento de movimiento de inventario con varias líneas.
type StockEntry struct {
	ID        string
	Purpose   string
	Remarks   string
	Items     []StockEntryItem
	CreatedBy string // UserID
	CreatedAt time.Time
}

// StockEntryItem línea del documento. SWarehouse = origen, TWarehouse = destino.
type StockEntryItem struct {
	ItemCode   string
	Qty        decimal.Decimal
	SWarehouse string
	TWarehouse string
}
