package inventory

import (
	"context"

	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	RunStockEntry(ctx context.Context, fn func(
		entryRepo repository.StockEntryRepository,
		binRepo repository.BinRepository,
	) error) error
}

// StockEntryHook se invoca al enviar un documento de stock, dentro de la misma transacción.
// Un error aborta el envío y revierte la transacción.
type StockEntryHook interface {
	OnStockEntrySubmit(ctx context.Context, entry *entity.StockEntry) error
}
