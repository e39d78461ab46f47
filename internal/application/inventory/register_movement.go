package inventory

import (
	"context"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
)

// SubmitFromRequest adapta el request HTTP al caso de uso Submit(ctx, *entity.StockEntry).
func (uc *SubmitStockEntryUseCase) SubmitFromRequest(ctx context.Context, userID string, in dto.SubmitStockEntryRequest) (*dto.StockEntryResponse, error) {
	entry := &entity.StockEntry{
		Purpose:   in.Purpose,
		Remarks:   in.Remarks,
		CreatedBy: userID,
	}
	for _, it := range in.Items {
		entry.Items = append(entry.Items, entity.StockEntryItem{
			ItemCode:   it.ItemCode,
			Qty:        it.Qty,
			SWarehouse: it.SWarehouse,
			TWarehouse: it.TWarehouse,
		})
	}
	if err := uc.Submit(ctx, entry); err != nil {
		return nil, err
	}
	return &dto.StockEntryResponse{ID: entry.ID, Purpose: entry.Purpose, Items: len(entry.Items)}, nil
}
