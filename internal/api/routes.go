package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.GetCycles)
	cycles.Get("/current", handler.GetCurrentCycle)
	cycles.Post("/period", handler.LogPeriod)
	cycles.Post("/period/end", handler.EndPeriod)
	cycles.Post("/symptoms", handler.LogSymptom)
	cycles.Post("/moods", handler.LogMood)
	cycles.Get("/days/:date", handler.GetDayLog)

	api.Get("/predictions", handler.AuthRequired, handler.GetPredictions)
	api.Get("/calendar", handler.AuthRequired, handler.GetCalendar)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)

	api.Get("/weather", handler.AuthRequired, handler.GetWeather)
}
