package handysync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/ports"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
	"github.com/rs/zerolog"
)

// SyncPriceListsUseCase reconcilia listas de precios en ambos sentidos usando
// nombre local = code remoto.
type SyncPriceListsUseCase struct {
	client        ports.HandyClient
	creds         *CredentialsProvider
	priceListRepo repository.PriceListRepository
	itemRepo      repository.ItemRepository
	rec           *Recorder
	log           zerolog.Logger
}

// NewSyncPriceListsUseCase construye el caso de uso.
func NewSyncPriceListsUseCase(
	client ports.HandyClient,
	creds *CredentialsProvider,
	priceListRepo repository.PriceListRepository,
	itemRepo repository.ItemRepository,
	rec *Recorder,
	log zerolog.Logger,
) *SyncPriceListsUseCase {
	return &SyncPriceListsUseCase{
		client:        client,
		creds:         creds,
		priceListRepo: priceListRepo,
		itemRepo:      itemRepo,
		rec:           rec,
		log:           log,
	}
}

// Execute:
//  1. trae el índice remoto completo (code -> id);
//  2. por cada lista local arma sus líneas y hace PUT si existe en Handy o POST si no;
//  3. crea localmente las listas que solo existen en Handy.
//
// Un fallo en una lista se registra en el error log y se continúa con la siguiente.
func (uc *SyncPriceListsUseCase) Execute(ctx context.Context) (res *dto.SyncResult, err error) {
	started := time.Now()
	res = &dto.SyncResult{}
	defer func() { uc.rec.Finish(ctx, entity.SyncOpPriceLists, started, res, err) }()

	cred, err := uc.creds.Resolve(ctx)
	if err != nil {
		return res, err
	}
	remote, err := uc.client.ListPriceLists(ctx, cred)
	if err != nil {
		return res, fmt.Errorf("sincronizar listas de precios: %w", err)
	}
	remoteByCode := make(map[string]dto.HandyPriceList, len(remote))
	for _, pl := range remote {
		code := strings.TrimSpace(pl.Code)
		if code == "" {
			continue
		}
		if _, dup := remoteByCode[code]; !dup {
			remoteByCode[code] = pl
		}
	}

	locals, err := uc.priceListRepo.List(ctx)
	if err != nil {
		return res, err
	}
	localNames := make(map[string]bool, len(locals))
	for _, pl := range locals {
		localNames[pl.Name] = true
		res.Processed++
		if err := uc.push(ctx, cred, pl, remoteByCode, res); err != nil {
			res.Failed++
			uc.rec.LogError(ctx, "Handy: lista de precios "+pl.Name, err)
		}
	}

	imported := 0
	for _, pl := range remote {
		code := strings.TrimSpace(pl.Code)
		if code == "" || localNames[code] {
			continue
		}
		localNames[code] = true
		if err := uc.pull(ctx, code, pl); err != nil {
			res.Failed++
			uc.rec.LogError(ctx, "Handy: importar lista de precios "+code, err)
			continue
		}
		imported++
	}

	res.Message = fmt.Sprintf(
		"Se sincronizaron %d listas de precios con Handy (%d creadas, %d actualizadas, %d importadas, %d con error).",
		res.Processed, res.Created, res.Updated, imported, res.Failed,
	)
	return res, nil
}

// push envía la lista local completa: PUT si ya existe en Handy, POST si no.
func (uc *SyncPriceListsUseCase) push(
	ctx context.Context,
	cred ports.Credentials,
	pl *entity.PriceList,
	remoteByCode map[string]dto.HandyPriceList,
	res *dto.SyncResult,
) error {
	prices, err := uc.priceListRepo.ListItemPrices(ctx, pl.Name)
	if err != nil {
		return err
	}
	payload := dto.PriceListPayload{
		Name:  pl.Name,
		Code:  pl.Name,
		Items: make([]dto.PriceListItemPayload, 0, len(prices)),
	}
	for _, p := range prices {
		payload.Items = append(payload.Items, dto.PriceListItemPayload{
			Product: p.ItemCode,
			Price:   p.Rate.InexactFloat64(),
		})
	}

	if existing, ok := remoteByCode[pl.Name]; ok {
		if err := uc.client.UpdatePriceList(ctx, cred, existing.ID, payload); err != nil {
			return err
		}
		res.Updated++
		uc.log.Info().Str("price_list", pl.Name).Int("items", len(payload.Items)).Msg("lista de precios actualizada en Handy")
		return nil
	}
	if err := uc.client.CreatePriceList(ctx, cred, payload); err != nil {
		return err
	}
	res.Created++
	uc.log.Info().Str("price_list", pl.Name).Int("items", len(payload.Items)).Msg("lista de precios creada en Handy")
	return nil
}

// pull crea localmente la lista name que solo existe en Handy. Se omiten las líneas
// cuyo producto no existe como artículo local.
func (uc *SyncPriceListsUseCase) pull(ctx context.Context, name string, remote dto.HandyPriceList) error {
	if _, err := uc.priceListRepo.Ensure(ctx, name); err != nil {
		return err
	}
	for _, line := range remote.Items {
		code := strings.TrimSpace(string(line.Product))
		if code == "" {
			continue
		}
		item, err := uc.itemRepo.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if item == nil {
			uc.log.Debug().Str("price_list", name).Str("item_code", code).Msg("producto sin artículo local, se omite")
			continue
		}
		if _, err := uc.priceListRepo.UpsertItemPrice(ctx, &entity.ItemPrice{
			PriceList: name,
			ItemCode:  code,
			Rate:      line.Price,
		}); err != nil {
			return err
		}
	}
	uc.log.Info().Str("price_list", name).Msg("lista de precios importada desde Handy")
	return nil
}
