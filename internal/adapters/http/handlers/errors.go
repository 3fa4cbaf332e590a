package handlers

import (
	"errors"

	"github.com/curlykit/PTLab2/internal/core/domain"
	"github.com/curlykit/PTLab2/internal/core/services"
	"github.com/curlykit/PTLab2/internal/pkg/password"
	"github.com/curlykit/PTLab2/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// writeServiceError maps service errors to JSON responses
func writeServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		return response.NotFound(c, "Employee not found")
	case errors.Is(err, services.ErrPaymentNotFound):
		return response.NotFound(c, "Payment not found")
	case errors.Is(err, services.ErrNonNumericAmount):
		return response.BadRequest(c, "Bonus and deductions must be numbers")
	case errors.Is(err, services.ErrInvalidEmployeeType):
		return response.BadRequest(c, "Unknown employee type")
	case errors.Is(err, services.ErrInvalidPaymentType):
		return response.BadRequest(c, "Unknown payment type")
	case errors.Is(err, services.ErrInvalidEmployee):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUnsupportedFormat):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, password.ErrTooShort):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "Resource already exists")
	case errors.Is(err, domain.ErrInvalidReference):
		return response.BadRequest(c, "Invalid reference")
	default:
		return response.InternalServerError(c, fallback)
	}
}
