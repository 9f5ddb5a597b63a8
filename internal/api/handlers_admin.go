package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terramonte/ridgeline/internal/services"
)

type expireInput struct {
	Year     int    `json:"year"`
	MockDate string `json:"mock_date"`
}

// ExpireMemberships runs the expiration sweep. An optional mock date routes
// through the simulated clock override so staging can exercise year
// rollovers; the override persists until explicitly cleared.
func (handler *Handler) ExpireMemberships(c *fiber.Ctx) error {
	var input expireInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if input.MockDate != "" {
		mockDate, err := services.ParseStoredDate(input.MockDate, nil)
		if err != nil {
			return serviceError(c, err)
		}
		handler.clock.SetOverride(mockDate)
	}

	expired, err := handler.expiration.EndExpired(input.Year)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"expired": expired, "year": input.Year})
}

type mockDateInput struct {
	MockDate string `json:"mock_date"`
}

func (handler *Handler) SetMockDate(c *fiber.Ctx) error {
	var input mockDateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	mockDate, err := services.ParseStoredDate(input.MockDate, nil)
	if err != nil {
		return serviceError(c, err)
	}
	handler.clock.SetOverride(mockDate)
	return c.JSON(fiber.Map{"mock_date": mockDate})
}

func (handler *Handler) ClearMockDate(c *fiber.Ctx) error {
	handler.clock.ClearOverride()
	return c.JSON(fiber.Map{"ok": true})
}
