package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/emart-api/internal/application/dto"
	"github.com/jhoicas/emart-api/internal/domain"
)

// errorMapping relaciona cada error de dominio con su status y código HTTP.
// writeError usa la primera entrada que coincida con errors.Is.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrInsufficientBalance, fiber.StatusConflict, "INSUFFICIENT_BALANCE"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidState, fiber.StatusConflict, "INVALID_STATE"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrStorageUnavailable, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
}

// writeError traduce un error de caso de uso a una respuesta dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// timeframe lee start/end de la query. ok=false si no vienen; error 400 si vienen mal formados.
func timeframe(c *fiber.Ctx) (q dto.TimeframeQuery, present bool, err error) {
	if err := c.QueryParser(&q); err != nil {
		return q, false, err
	}
	return q, q.Start != "" || q.End != "", nil
}

func invalidTimeframe(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TIMEFRAME", Message: "start y end deben ser RFC 3339 o YYYY-MM-DD"})
}
