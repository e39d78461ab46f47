package handysync

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/ports"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
	"github.com/rs/zerolog"
)

// PushQuantitiesUseCase publica en Handy la existencia de cada artículo de una bodega.
type PushQuantitiesUseCase struct {
	client    ports.HandyClient
	creds     *CredentialsProvider
	binRepo   repository.BinRepository
	warehouse string
	rec       *Recorder
	log       zerolog.Logger
}

// NewPushQuantitiesUseCase construye el caso de uso para la bodega indicada ("Bodega - D").
func NewPushQuantitiesUseCase(
	client ports.HandyClient,
	creds *CredentialsProvider,
	binRepo repository.BinRepository,
	warehouse string,
	rec *Recorder,
	log zerolog.Logger,
) *PushQuantitiesUseCase {
	return &PushQuantitiesUseCase{
		client:    client,
		creds:     creds,
		binRepo:   binRepo,
		warehouse: warehouse,
		rec:       rec,
		log:       log,
	}
}

// Execute trae el catálogo remoto completo y hace PUT /product/{code} por cada bin.
// Un artículo sin producto en Handy se registra como advertencia; un PUT fallido
// va al error log. Ninguno de los dos detiene la corrida.
func (uc *PushQuantitiesUseCase) Execute(ctx context.Context) (res *dto.SyncResult, err error) {
	started := time.Now()
	res = &dto.SyncResult{}
	defer func() { uc.rec.Finish(ctx, entity.SyncOpQuantities, started, res, err) }()

	cred, err := uc.creds.Resolve(ctx)
	if err != nil {
		return res, err
	}
	products, err := uc.client.ListProducts(ctx, cred)
	if err != nil {
		return res, fmt.Errorf("consultar productos de Handy: %w", err)
	}
	remote := make(map[string]bool, len(products))
	for _, p := range products {
		remote[p.Code] = true
	}

	bins, err := uc.binRepo.ListByWarehouse(ctx, uc.warehouse)
	if err != nil {
		return res, err
	}
	skipped := 0
	for _, bin := range bins {
		res.Processed++
		if !remote[bin.ItemCode] {
			skipped++
			uc.rec.LogError(ctx, "Handy: producto no encontrado",
				fmt.Errorf("el artículo %s no existe en Handy; se omite", bin.ItemCode))
			continue
		}
		payload := dto.ProductQuantityPayload{Quantity: bin.ActualQty.InexactFloat64()}
		if perr := uc.client.UpdateProductQuantity(ctx, cred, bin.ItemCode, payload); perr != nil {
			res.Failed++
			uc.rec.LogError(ctx, "Handy: existencia de "+bin.ItemCode, perr)
			continue
		}
		res.Updated++
	}
	res.Message = fmt.Sprintf(
		"Se actualizaron %d existencias de %s en Handy (%d sin producto en Handy, %d con error).",
		res.Updated, uc.warehouse, skipped, res.Failed,
	)
	return res, nil
}
