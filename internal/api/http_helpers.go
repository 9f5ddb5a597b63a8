package api

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terramonte/ridgeline/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps the service error taxonomy onto HTTP statuses; the
// specific invariant violated is surfaced to the caller, store failures are
// not.
func serviceError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return apiError(c, fiber.StatusBadRequest, validation.Message)
	}

	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		return apiError(c, fiber.StatusConflict, conflict.Message)
	}

	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		return apiError(c, fiber.StatusNotFound, notFound.Error())
	}

	if errors.Is(err, services.ErrInvalidCredentials) {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	log.Printf("internal error: %v", err)
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return 0, services.NewValidationError("invalid %s %q", name, raw)
	}
	return uint(parsed), nil
}
