package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terramonte/ridgeline/internal/services"
)

func (handler *Handler) ListActivities(c *fiber.Ctx) error {
	activities, err := handler.activities.List()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(activities)
}

func (handler *Handler) CreateActivity(c *fiber.Ctx) error {
	var input services.ActivityInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	activity, err := handler.activities.Create(input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

func (handler *Handler) GetActivity(c *fiber.Ctx) error {
	activityID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	activity, err := handler.activities.Find(activityID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(activity)
}

func (handler *Handler) UpdateActivity(c *fiber.Ctx) error {
	activityID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var input services.ActivityInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	activity, err := handler.activities.Update(activityID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(activity)
}

type participantsInput struct {
	Participants []services.ParticipantInput `json:"participants"`
}

func (handler *Handler) SetActivityParticipants(c *fiber.Ctx) error {
	activityID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var input participantsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	activity, err := handler.activities.SetParticipants(activityID, input.Participants)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(activity)
}

func (handler *Handler) GetActivityHours(c *fiber.Ctx) error {
	activityID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	report, err := handler.activities.HoursReport(activityID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(report)
}

type activityTypeInput struct {
	Name string `json:"name"`
}

func (handler *Handler) ListActivityTypes(c *fiber.Ctx) error {
	types, err := handler.activities.ListTypes()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(types)
}

func (handler *Handler) CreateActivityType(c *fiber.Ctx) error {
	var input activityTypeInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	activityType, err := handler.activities.CreateType(input.Name)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(activityType)
}
