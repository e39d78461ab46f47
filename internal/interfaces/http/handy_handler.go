package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/handysync"
)

// SyncJobs operaciones de sincronización invocables por RPC.
type SyncJobs struct {
	Customers  handysync.Job
	Products   handysync.Job
	PriceLists handysync.Job
	Quantities handysync.Job
}

type syncRunLister interface {
	ListRecent(ctx context.Context, limit int) ([]dto.SyncRunResponse, error)
}

type settingsService interface {
	Get(ctx context.Context) (*dto.HandySettingsResponse, error)
	Save(ctx context.Context, in dto.HandySettingsRequest) (*dto.HandySettingsResponse, error)
}

// HandyHandler expone las operaciones de sincronización con Handy (solo admin).
type HandyHandler struct {
	jobs     SyncJobs
	runs     syncRunLister
	settings settingsService
}

// NewHandyHandler construye el handler.
func NewHandyHandler(jobs SyncJobs, runs syncRunLister, settings settingsService) *HandyHandler {
	return &HandyHandler{jobs: jobs, runs: runs, settings: settings}
}

func (h *HandyHandler) run(c *fiber.Ctx, job handysync.Job) error {
	res, err := job(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// SyncCustomers godoc
// @Summary      Importar clientes desde Handy
// @Tags         handy
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/handy/sync/customers [post]
func (h *HandyHandler) SyncCustomers(c *fiber.Ctx) error {
	return h.run(c, h.jobs.Customers)
}

// SyncProducts godoc
// @Summary      Importar productos desde Handy
// @Description  Requiere un grupo de artículos raíz (412 si no existe).
// @Tags         handy
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncResult
// @Failure      412  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/handy/sync/products [post]
func (h *HandyHandler) SyncProducts(c *fiber.Ctx) error {
	return h.run(c, h.jobs.Products)
}

// SyncPriceLists godoc
// @Summary      Sincronizar listas de precios (ambos sentidos)
// @Tags         handy
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncResult
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/handy/sync/price-lists [post]
func (h *HandyHandler) SyncPriceLists(c *fiber.Ctx) error {
	return h.run(c, h.jobs.PriceLists)
}

// PushQuantities godoc
// @Summary      Publicar existencias de la bodega configurada en Handy
// @Tags         handy
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncResult
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/handy/sync/quantities [post]
func (h *HandyHandler) PushQuantities(c *fiber.Ctx) error {
	return h.run(c, h.jobs.Quantities)
}

// ListRuns godoc
// @Summary      Historial de corridas
// @Tags         handy
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de corridas (1-200, por defecto 50)"
// @Success      200  {array}   dto.SyncRunResponse
// @Router       /api/handy/sync-runs [get]
func (h *HandyHandler) ListRuns(c *fiber.Ctx) error {
	runs, err := h.runs.ListRecent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(runs)
}

// GetSettings godoc
// @Summary      Ver configuración de Handy (API key enmascarada)
// @Tags         handy
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.HandySettingsResponse
// @Router       /api/handy/settings [get]
func (h *HandyHandler) GetSettings(c *fiber.Ctx) error {
	out, err := h.settings.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SaveSettings godoc
// @Summary      Guardar API key de Handy
// @Tags         handy
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.HandySettingsRequest  true  "api_key"
// @Success      200  {object}  dto.HandySettingsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/handy/settings [put]
func (h *HandyHandler) SaveSettings(c *fiber.Ctx) error {
	var in dto.HandySettingsRequest
	if e := bindAndValidate(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.settings.Save(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
