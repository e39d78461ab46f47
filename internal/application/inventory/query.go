package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/domain"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
)

// StockEntryQuery consulta documentos de stock ya registrados.
type StockEntryQuery struct {
	repo repository.StockEntryRepository
}

// NewStockEntryQuery construye la consulta.
func NewStockEntryQuery(repo repository.StockEntryRepository) *StockEntryQuery {
	return &StockEntryQuery{repo: repo}
}

// GetByID devuelve el documento con sus líneas en orden. ErrNotFound si no existe
// o si id no es un UUID.
func (q *StockEntryQuery) GetByID(ctx context.Context, id string) (*dto.StockEntryDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	e, err := q.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	out := &dto.StockEntryDetailResponse{
		ID:        e.ID,
		Purpose:   e.Purpose,
		Remarks:   e.Remarks,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
		Items:     make([]dto.StockEntryItemResponse, 0, len(e.Items)),
	}
	for _, it := range e.Items {
		out.Items = append(out.Items, dto.StockEntryItemResponse{
			ItemCode:   it.ItemCode,
			Qty:        it.Qty,
			SWarehouse: it.SWarehouse,
			TWarehouse: it.TWarehouse,
		})
	}
	return out, nil
}
