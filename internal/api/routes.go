package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/terraincognita07/moments/internal/metrics"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Get("/lang/:lang", handler.SetLanguage)

	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.SessionMiddleware)

	api.Get("/events", handler.Events)
	api.Get("/feelings", handler.ListFeelings)

	planned := api.Group("/planned-moments")
	planned.Get("/", handler.ListPlannedMoments)
	planned.Post("/", handler.CreatePlannedMoment)
	planned.Get("/dates", handler.PlannedMomentDates)
	planned.Get("/calendar", handler.PlannedMomentCalendar)
	planned.Get("/week", handler.PlannedMomentWeek)
	planned.Get("/on/:date", handler.PlannedMomentsOnDate)
	planned.Get("/:id/share", handler.SharePlannedMoment)
	planned.Delete("/:id", handler.DeletePlannedMoment)

	moments := api.Group("/moments")
	moments.Get("/", handler.ListMoments)
	moments.Get("/recent", handler.MostRecentMoment)
	moments.Get("/:id", handler.GetMoment)
	moments.Post("/", handler.CreateMoment)
	moments.Patch("/:id", handler.UpdateMoment)
	moments.Delete("/:id", handler.DeleteMoment)

	notifications := api.Group("/notifications")
	notifications.Get("/", handler.ListNotifications)
	notifications.Post("/read-all", handler.MarkAllNotificationsRead)
	notifications.Post("/:id/read", handler.MarkNotificationRead)

	api.Post("/vault/visit", handler.VisitVault)

	api.Get("/profile", handler.GetProfile)
	api.Put("/profile", handler.UpdateProfile)

	draft := api.Group("/draft")
	draft.Get("/", handler.GetDraft)
	draft.Put("/", handler.SaveDraft)
	draft.Delete("/", handler.DiscardDraft)
	draft.Post("/confirm", handler.ConfirmDraft)
	draft.Post("/feeling", handler.CompleteFeelingCheck)
}
