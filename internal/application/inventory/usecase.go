package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/handy-sync/internal/domain"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SubmitStockEntryUseCase registra documentos de stock de forma transaccional
// (Material Receipt, Material Issue, Material Transfer) con bloqueo de fila (SELECT FOR UPDATE)
// y Commit/Rollback. Los hooks registrados corren dentro de la misma transacción.
type SubmitStockEntryUseCase struct {
	txRunner      TxRunner
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	hooks         []StockEntryHook
	log           zerolog.Logger
}

// NewSubmitStockEntryUseCase construye el caso de uso.
func NewSubmitStockEntryUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	log zerolog.Logger,
	hooks ...StockEntryHook,
) *SubmitStockEntryUseCase {
	return &SubmitStockEntryUseCase{
		txRunner:      txRunner,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		hooks:         hooks,
		log:           log,
	}
}

// Submit valida el documento, inicia una transacción, aplica cada línea sobre los bins,
// persiste el documento y ejecuta los hooks. Cualquier error hace Rollback.
func (uc *SubmitStockEntryUseCase) Submit(ctx context.Context, entry *entity.StockEntry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}
	if err := uc.checkReferences(ctx, entry); err != nil {
		return err
	}

	now := time.Now()
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = now

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (RunStockEntry lo hace)
	err := uc.txRunner.RunStockEntry(ctx, func(
		entryRepo repository.StockEntryRepository,
		binRepo repository.BinRepository,
	) error {
		for _, line := range entry.Items {
			var err error
			switch entry.Purpose {
			case entity.PurposeMaterialReceipt:
				err = doReceipt(ctx, binRepo, line, now)
			case entity.PurposeMaterialIssue:
				err = doIssue(ctx, binRepo, line, now)
			case entity.PurposeMaterialTransfer:
				err = doTransfer(ctx, binRepo, line, now)
			}
			if err != nil {
				return err
			}
		}
		if err := entryRepo.Create(ctx, entry); err != nil {
			return err
		}
		for _, h := range uc.hooks {
			if err := h.OnStockEntrySubmit(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("purpose", entry.Purpose).Msg("envío de documento de stock revertido")
		return err
	}
	uc.log.Info().Str("stock_entry", entry.ID).Str("purpose", entry.Purpose).Int("items", len(entry.Items)).
		Msg("documento de stock registrado")
	return nil
}

func validateEntry(entry *entity.StockEntry) error {
	if entry == nil || len(entry.Items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, line := range entry.Items {
		if line.ItemCode == "" || !line.Qty.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		switch entry.Purpose {
		case entity.PurposeMaterialReceipt:
			if line.TWarehouse == "" {
				return domain.ErrInvalidInput
			}
		case entity.PurposeMaterialIssue:
			if line.SWarehouse == "" {
				return domain.ErrInvalidInput
			}
		case entity.PurposeMaterialTransfer:
			if line.SWarehouse == "" || line.TWarehouse == "" || line.SWarehouse == line.TWarehouse {
				return domain.ErrInvalidInput
			}
		default:
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// checkReferences verifica que artículos y bodegas existan.
func (uc *SubmitStockEntryUseCase) checkReferences(ctx context.Context, entry *entity.StockEntry) error {
	seenItems := map[string]bool{}
	seenWh := map[string]bool{}
	for _, line := range entry.Items {
		if !seenItems[line.ItemCode] {
			item, err := uc.itemRepo.GetByCode(ctx, line.ItemCode)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			seenItems[line.ItemCode] = true
		}
		for _, wh := range []string{line.SWarehouse, line.TWarehouse} {
			if wh == "" || seenWh[wh] {
				continue
			}
			w, err := uc.warehouseRepo.GetByName(ctx, wh)
			if err != nil {
				return err
			}
			if w == nil {
				return domain.ErrNotFound
			}
			seenWh[wh] = true
		}
	}
	return nil
}

// doReceipt: bloquea fila de destino y suma la cantidad.
func doReceipt(ctx context.Context, binRepo repository.BinRepository, line entity.StockEntryItem, now time.Time) error {
	bin, err := binRepo.GetForUpdate(ctx, line.ItemCode, line.TWarehouse)
	if err != nil {
		return err
	}
	bin.ActualQty = bin.ActualQty.Add(line.Qty)
	bin.UpdatedAt = now
	return binRepo.Upsert(ctx, bin)
}

// doIssue: bloquea fila de origen, verifica existencia >= cantidad y resta.
func doIssue(ctx context.Context, binRepo repository.BinRepository, line entity.StockEntryItem, now time.Time) error {
	bin, err := binRepo.GetForUpdate(ctx, line.ItemCode, line.SWarehouse)
	if err != nil {
		return err
	}
	if bin.ActualQty.LessThan(line.Qty) {
		return domain.ErrInsufficientStock
	}
	bin.ActualQty = bin.ActualQty.Sub(line.Qty)
	bin.UpdatedAt = now
	return binRepo.Upsert(ctx, bin)
}

// doTransfer: resta de bodega origen y suma en bodega destino, misma transacción.
func doTransfer(ctx context.Context, binRepo repository.BinRepository, line entity.StockEntryItem, now time.Time) error {
	if err := doIssue(ctx, binRepo, line, now); err != nil {
		return err
	}
	return doReceipt(ctx, binRepo, line, now)
}
