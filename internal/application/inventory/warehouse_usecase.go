package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/domain"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
)

// WarehouseUseCase alta y listado de bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create da de alta la bodega. Si ya existe la devuelve con created=false.
// El nombre debe llevar el sufijo de empresa ("Ruta 227 - D").
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, bool, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, false, domain.ErrInvalidInput
	}
	created, err := uc.repo.Create(ctx, &entity.Warehouse{Name: name})
	if err != nil {
		return nil, false, err
	}
	w, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if w == nil {
		return nil, false, domain.ErrNotFound
	}
	return toWarehouseResponse(w), created, nil
}

// List devuelve todas las bodegas.
func (uc *WarehouseUseCase) List(ctx context.Context) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{Items: items}, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{Name: w.Name, CreatedAt: w.CreatedAt}
}
