package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/handy-sync/internal/application/dto"
)

type stockEntrySubmitter interface {
	SubmitFromRequest(ctx context.Context, userID string, in dto.SubmitStockEntryRequest) (*dto.StockEntryResponse, error)
}

type stockEntryReader interface {
	GetByID(ctx context.Context, id string) (*dto.StockEntryDetailResponse, error)
}

// StockEntryHandler registra y consulta documentos de stock (protegido).
type StockEntryHandler struct {
	submit stockEntrySubmitter
	query  stockEntryReader
}

// NewStockEntryHandler construye el handler.
func NewStockEntryHandler(submit stockEntrySubmitter, query stockEntryReader) *StockEntryHandler {
	return &StockEntryHandler{submit: submit, query: query}
}

// Submit godoc
// @Summary      Registrar documento de stock
// @Description  Aplica las líneas en una transacción. Los traslados hacia bodegas-ruta
//
//	crean o recargan la ruta en Handy; si eso falla no se guarda nada.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitStockEntryRequest  true  "purpose, items"
// @Success      201   {object}  dto.StockEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      412   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/stock-entries [post]
func (h *StockEntryHandler) Submit(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SubmitStockEntryRequest
	if e := bindAndValidate(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.submit.SubmitFromRequest(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar documento de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.StockEntryDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-entries/{id} [get]
func (h *StockEntryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
