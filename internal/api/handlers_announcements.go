package api

import "github.com/gofiber/fiber/v2"

type announcementInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (handler *Handler) ListAnnouncements(c *fiber.Ctx) error {
	announcements, err := handler.announcements.List()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(announcements)
}

func (handler *Handler) GetAnnouncement(c *fiber.Ctx) error {
	announcement, err := handler.announcements.Find(c.Params("publicID"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(announcement)
}

func (handler *Handler) PublishAnnouncement(c *fiber.Ctx) error {
	var input announcementInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	authorEmail := ""
	if admin, ok := currentAdmin(c); ok {
		authorEmail = admin.Email
	}

	announcement, err := handler.announcements.Publish(input.Title, input.Body, authorEmail)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(announcement)
}

func (handler *Handler) DeleteAnnouncement(c *fiber.Ctx) error {
	if err := handler.announcements.Delete(c.Params("publicID")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
