package handysync

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/inventory"
	"github.com/jhoicas/handy-sync/internal/application/ports"
	"github.com/jhoicas/handy-sync/internal/domain"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var _ inventory.StockEntryHook = (*ReplenishRoutesUseCase)(nil)

// RouteConfig bodegas vigiladas y separador del sufijo local ("Ruta 227 - D").
type RouteConfig struct {
	WatchedWarehouses []string
	SuffixSep         string
}

// ReplenishRoutesUseCase crea o recarga rutas abiertas en Handy cuando se envía
// una transferencia hacia una bodega vigilada.
type ReplenishRoutesUseCase struct {
	client  ports.HandyClient
	creds   *CredentialsProvider
	watched map[string]bool
	sep     string
	rec     *Recorder
	log     zerolog.Logger
}

// NewReplenishRoutesUseCase construye el hook.
func NewReplenishRoutesUseCase(
	client ports.HandyClient,
	creds *CredentialsProvider,
	cfg RouteConfig,
	rec *Recorder,
	log zerolog.Logger,
) *ReplenishRoutesUseCase {
	watched := make(map[string]bool, len(cfg.WatchedWarehouses))
	for _, w := range cfg.WatchedWarehouses {
		if w = strings.TrimSpace(w); w != "" {
			watched[w] = true
		}
	}
	sep := cfg.SuffixSep
	if sep == "" {
		sep = " - "
	}
	return &ReplenishRoutesUseCase{client: client, creds: creds, watched: watched, sep: sep, rec: rec, log: log}
}

// warehouseGroup líneas agrupadas de una bodega vigilada, en orden de aparición.
type warehouseGroup struct {
	Warehouse string
	codes     []string
	qty       map[string]decimal.Decimal
}

func (g *warehouseGroup) products() []dto.RouteProductPayload {
	out := make([]dto.RouteProductPayload, 0, len(g.codes))
	for _, code := range g.codes {
		out = append(out, dto.RouteProductPayload{Product: code, Quantity: g.qty[code].InexactFloat64()})
	}
	return out
}

// groupByWarehouse agrupa por bodega destino sin sufijo, solo bodegas vigiladas.
// Un mismo artículo repetido en la bodega se suma.
func (uc *ReplenishRoutesUseCase) groupByWarehouse(items []entity.StockEntryItem) []*warehouseGroup {
	var groups []*warehouseGroup
	byName := map[string]*warehouseGroup{}
	for _, line := range items {
		wh, _, _ := strings.Cut(line.TWarehouse, uc.sep)
		wh = strings.TrimSpace(wh)
		if !uc.watched[wh] || line.ItemCode == "" {
			continue
		}
		g, ok := byName[wh]
		if !ok {
			g = &warehouseGroup{Warehouse: wh, qty: map[string]decimal.Decimal{}}
			byName[wh] = g
			groups = append(groups, g)
		}
		if _, seen := g.qty[line.ItemCode]; !seen {
			g.codes = append(g.codes, line.ItemCode)
		}
		g.qty[line.ItemCode] = g.qty[line.ItemCode].Add(line.Qty)
	}
	return groups
}

// OnStockEntrySubmit corre dentro de la transacción del documento. Crear una ruta
// faltante es fatal (revierte el envío); recargar una ruta existente no lo es.
func (uc *ReplenishRoutesUseCase) OnStockEntrySubmit(ctx context.Context, entry *entity.StockEntry) (err error) {
	if entry.Purpose != entity.PurposeMaterialTransfer {
		return nil
	}
	groups := uc.groupByWarehouse(entry.Items)
	if len(groups) == 0 {
		return nil
	}

	started := time.Now()
	res := &dto.SyncResult{}
	defer func() { uc.rec.Finish(ctx, entity.SyncOpRoutes, started, res, err) }()

	cred, err := uc.creds.Resolve(ctx)
	if err != nil {
		return err
	}
	routes, err := uc.client.ListOpenRoutes(ctx, cred)
	if err != nil {
		return fmt.Errorf("consultar rutas abiertas: %w", err)
	}
	owners := map[string]int64{}
	for _, r := range routes {
		if r.User == nil || !uc.watched[r.User.Name] {
			continue
		}
		if _, ok := owners[r.User.Name]; !ok {
			owners[r.User.Name] = r.User.ID
		}
	}

	for _, g := range groups {
		res.Processed++
		products := g.products()
		userID, ok := owners[g.Warehouse]
		if ok {
			if rerr := uc.client.RechargeRoute(ctx, cred, userID, dto.RechargeRoutePayload{Products: products}); rerr != nil {
				res.Failed++
				uc.rec.LogError(ctx, "Handy: recarga de ruta "+g.Warehouse, rerr)
				continue
			}
			res.Updated++
			uc.log.Info().Str("warehouse", g.Warehouse).Int64("user_id", userID).Int("products", len(products)).
				Msg("ruta recargada en Handy")
			continue
		}

		users, err := uc.client.FindUsersByName(ctx, cred, g.Warehouse)
		if err != nil {
			return fmt.Errorf("buscar usuario %q en Handy: %w", g.Warehouse, err)
		}
		if len(users) == 0 {
			return fmt.Errorf("%q: %w", g.Warehouse, domain.ErrRemoteUserNotFound)
		}
		payload := dto.CreateRoutePayload{
			InitialAmount: 0,
			Comments:      "Creado automaticamente para " + g.Warehouse,
			SalesOrders:   []json.RawMessage{},
			Products:      products,
		}
		if err := uc.client.CreateRoute(ctx, cred, users[0].ID, payload); err != nil {
			return fmt.Errorf("crear ruta para %q: %w", g.Warehouse, err)
		}
		res.Created++
		uc.log.Info().Str("warehouse", g.Warehouse).Int64("user_id", users[0].ID).Int("products", len(products)).
			Msg("ruta creada en Handy")
	}
	res.Message = fmt.Sprintf("Rutas de Handy: %d creadas, %d recargadas, %d con error.", res.Created, res.Updated, res.Failed)
	return nil
}
