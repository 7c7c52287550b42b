package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bookkeeping-api/internal/application/dto"
	"github.com/jhoicas/bookkeeping-api/internal/domain"
)

// validationMessages mensajes públicos por error de validación.
var validationMessages = []struct {
	err error
	msg string
}{
	{domain.ErrInvalidLine, "Each product needs productId, quantity >= 1 and price >= 0"},
	{domain.ErrInvalidTransactionType, "type must be sale or purchase"},
	{domain.ErrInvalidContactType, "type must be customer or vendor"},
	{domain.ErrCounterpartyMismatch, "Contact type does not match the transaction type"},
	{domain.ErrInvalidInput, "Invalid input"},
}

// respondError traduce errores de dominio a status + dto.ErrorResponse.
// Lo no reconocido es 500 y queda en el log del request.
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		name := stockErr.ProductName
		if name == "" {
			name = stockErr.ProductID
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "Insufficient stock for " + name,
		})
	}
	for _, v := range validationMessages {
		if errors.Is(err, v.err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: v.msg})
		}
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Resource not found"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "Username or email already exists"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid credentials"})
	}
	RequestLogger(c).Error().Err(err).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Internal server error"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "Invalid query parameters"})
}
