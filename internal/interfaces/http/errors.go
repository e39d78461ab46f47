package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/domain"
	"github.com/jhoicas/handy-sync/internal/infrastructure/handy"
)

// writeError traduce errores de dominio y de Handy a la respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	var transportErr *handy.TransportError
	if _, ok := handy.AsAPIError(err); ok {
		status, code = fiber.StatusBadGateway, "REMOTE_ERROR"
	} else {
		switch {
		case errors.As(err, &transportErr), errors.Is(err, domain.ErrPaginationLoop):
			status, code = fiber.StatusBadGateway, "REMOTE_ERROR"
		case errors.Is(err, domain.ErrMissingCredentials):
			status, code = fiber.StatusBadRequest, "MISSING_CREDENTIALS"
		case errors.Is(err, domain.ErrRootItemGroupMissing), errors.Is(err, domain.ErrRemoteUserNotFound):
			status, code = fiber.StatusPreconditionFailed, "PRECONDITION"
		case errors.Is(err, domain.ErrInvalidInput):
			status, code = fiber.StatusBadRequest, "VALIDATION"
		case errors.Is(err, domain.ErrNotFound):
			status, code = fiber.StatusNotFound, "NOT_FOUND"
		case errors.Is(err, domain.ErrInsufficientStock):
			status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
