package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Importaciones-api/internal/application/dto"
	"github.com/jhoicas/Importaciones-api/internal/domain"
)

// errorMapping error de dominio -> status HTTP y código de la respuesta.
type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: ErrFieldNotEditable envuelve ErrInvalidInput.
var errorMappings = []errorMapping{
	{domain.ErrArchived, fiber.StatusGone, "ARCHIVED"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrOverReceipt, fiber.StatusUnprocessableEntity, "OVER_RECEIPT"},
	{domain.ErrInsufficientCredit, fiber.StatusConflict, "INSUFFICIENT_CREDIT"},
	{domain.ErrConcurrentModification, fiber.StatusConflict, "CONCURRENT_MODIFICATION"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// statusFor devuelve status y código para err; INTERNAL 500 si no es un error de dominio.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
