package handysync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/ports"
	"github.com/jhoicas/handy-sync/internal/domain"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SyncProductsUseCase trae el catálogo de Handy y crea o sobrescribe los artículos locales.
type SyncProductsUseCase struct {
	client    ports.HandyClient
	creds     *CredentialsProvider
	itemRepo  repository.ItemRepository
	groupRepo repository.ItemGroupRepository
	uomRepo   repository.UOMRepository
	rec       *Recorder
	log       zerolog.Logger
}

// NewSyncProductsUseCase construye el caso de uso.
func NewSyncProductsUseCase(
	client ports.HandyClient,
	creds *CredentialsProvider,
	itemRepo repository.ItemRepository,
	groupRepo repository.ItemGroupRepository,
	uomRepo repository.UOMRepository,
	rec *Recorder,
	log zerolog.Logger,
) *SyncProductsUseCase {
	return &SyncProductsUseCase{
		client:    client,
		creds:     creds,
		itemRepo:  itemRepo,
		groupRepo: groupRepo,
		uomRepo:   uomRepo,
		rec:       rec,
		log:       log,
	}
}

// Execute exige un grupo de artículos raíz antes de pedir nada a Handy.
// Unidades y grupos faltantes se crean bajo demanda; es idempotente.
func (uc *SyncProductsUseCase) Execute(ctx context.Context) (res *dto.SyncResult, err error) {
	started := time.Now()
	res = &dto.SyncResult{}
	defer func() { uc.rec.Finish(ctx, entity.SyncOpProducts, started, res, err) }()

	cred, err := uc.creds.Resolve(ctx)
	if err != nil {
		return res, err
	}
	root, err := uc.groupRepo.GetRoot(ctx)
	if err != nil {
		return res, err
	}
	if root == "" {
		return res, domain.ErrRootItemGroupMissing
	}

	uoms := map[string]bool{}
	groups := map[string]bool{root: true}

	err = uc.client.ForEachProductPage(ctx, cred, func(page []dto.HandyProduct) error {
		for _, remote := range page {
			code := strings.TrimSpace(remote.Code)
			if code == "" {
				continue
			}
			item := mapItem(remote, root)
			item.ItemCode = code

			if !uoms[item.StockUOM] {
				if _, err := uc.uomRepo.Ensure(ctx, item.StockUOM); err != nil {
					return fmt.Errorf("unidad %q: %w", item.StockUOM, err)
				}
				uoms[item.StockUOM] = true
			}
			if !groups[item.ItemGroup] {
				if _, err := uc.groupRepo.Ensure(ctx, item.ItemGroup, root); err != nil {
					return fmt.Errorf("grupo de artículos %q: %w", item.ItemGroup, err)
				}
				groups[item.ItemGroup] = true
			}
			created, err := uc.itemRepo.Upsert(ctx, item)
			if err != nil {
				return fmt.Errorf("artículo %s: %w", code, err)
			}
			res.Processed++
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("sincronizar productos: %w", err)
	}
	res.Message = fmt.Sprintf("Se sincronizaron %d productos desde Handy.", res.Processed)
	return res, nil
}

func mapItem(remote dto.HandyProduct, rootGroup string) *entity.Item {
	it := &entity.Item{
		ItemName:     entity.DefaultItemName,
		StockUOM:     entity.DefaultUOM,
		StandardRate: decimal.Zero,
		Barcode:      remote.Barcode,
		ItemGroup:    rootGroup,
	}
	if remote.Description != nil && strings.TrimSpace(*remote.Description) != "" {
		it.ItemName = strings.TrimSpace(*remote.Description)
	}
	if remote.Unit != nil && strings.TrimSpace(remote.Unit.Code) != "" {
		it.StockUOM = strings.TrimSpace(remote.Unit.Code)
	}
	if remote.Price != nil {
		it.StandardRate = *remote.Price
	}
	if remote.Category != nil && strings.TrimSpace(remote.Category.Description) != "" {
		it.ItemGroup = strings.TrimSpace(remote.Category.Description)
	}
	return it
}
