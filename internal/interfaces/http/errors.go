package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// writeError traduce un error de dominio a la respuesta HTTP correspondiente.
// Los 5xx se registran; el resto es error del cliente.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := mapError(err)
	if status >= fiber.StatusInternalServerError && log != nil {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error procesando la petición")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		ve *domain.ValidationError
		ne *domain.NotFoundError
		se *domain.StockError
	)
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Details: ve.Fields}
	case errors.As(err, &se):
		details := map[string]string{"product_id": se.ProductID, "warehouse_id": se.WarehouseID}
		code := "STOCK_NOT_FOUND"
		if errors.Is(se.Kind, domain.ErrInsufficientStock) {
			code = "INSUFFICIENT_STOCK"
			details["requested"] = strconv.FormatInt(se.Requested, 10)
			details["available"] = strconv.FormatInt(se.Available, 10)
		}
		return fiber.StatusConflict, dto.ErrorResponse{Code: code, Message: se.Error(), Details: details}
	case errors.As(err, &ne):
		return fiber.StatusNotFound, dto.ErrorResponse{
			Code: "NOT_FOUND", Message: ne.Error(),
			Details: map[string]string{"entity": ne.Entity, "id": ne.ID},
		}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "STORAGE", Message: "error de almacenamiento, intente de nuevo"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func invalidParams(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
}
