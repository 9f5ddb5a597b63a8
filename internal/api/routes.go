package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	members := api.Group("/members", handler.AuthRequired)
	members.Get("", handler.ListMembers)
	members.Post("", handler.RegisterMember)
	members.Get("/:id", handler.GetMember)
	members.Get("/:id/periods", handler.GetMemberPeriods)
	members.Put("/:id/periods", handler.ReplaceMemberPeriods)
	members.Post("/:id/periods", handler.OpenMemberPeriod)
	members.Post("/:id/fee-payment", handler.RecordFeePayment)
	members.Post("/:id/card", handler.AssignCard)
	members.Post("/:id/stamps", handler.SetStamps)
	members.Get("/:id/hours", handler.GetMemberHours)

	periods := api.Group("/periods", handler.AuthRequired)
	periods.Post("/:id/close", handler.ClosePeriod)

	activities := api.Group("/activities", handler.AuthRequired)
	activities.Get("", handler.ListActivities)
	activities.Post("", handler.CreateActivity)
	activities.Get("/types", handler.ListActivityTypes)
	activities.Post("/types", handler.CreateActivityType)
	activities.Get("/:id", handler.GetActivity)
	activities.Put("/:id", handler.UpdateActivity)
	activities.Put("/:id/participants", handler.SetActivityParticipants)
	activities.Get("/:id/hours", handler.GetActivityHours)

	admin := api.Group("/admin", handler.AuthRequired)
	admin.Post("/expire-memberships", handler.ExpireMemberships)
	admin.Post("/mock-date", handler.SetMockDate)
	admin.Delete("/mock-date", handler.ClearMockDate)

	announcements := api.Group("/announcements")
	announcements.Get("", handler.ListAnnouncements)
	announcements.Get("/:publicID", handler.GetAnnouncement)
	announcements.Post("", handler.AuthRequired, handler.PublishAnnouncement)
	announcements.Delete("/:publicID", handler.AuthRequired, handler.DeleteAnnouncement)
}
