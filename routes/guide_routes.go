package routes

import (
	"github.com/tembea/local_guide/handlers"
	"github.com/tembea/local_guide/middleware"
	"github.com/gofiber/fiber/v2"
)

func GuideRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/guides", handlers.ListActiveGuides)
	api.Get("/guides/:guideId", handlers.GetGuideProfile)
	api.Get("/guides/:guideId/schedule", handlers.GetGuideSchedule)
	api.Get("/guides/:guideId/availability", handlers.CheckGuideAvailability)

	guide := api.Group("/guide", middleware.Protected())
	guide.Post("/apply", handlers.ApplyToBeAGuide)
	guide.Get("/bookings", handlers.GetMyGuideBookings)
	guide.Get("/earnings", handlers.GetGuideEarnings)

	profile := guide.Group("/profile", middleware.GuideRequired())
	profile.Put("/me", handlers.UpdateMyGuideProfile)

	availability := guide.Group("/availability", middleware.GuideRequired())
	availability.Put("", handlers.SetMyAvailability)
	availability.Get("/me", handlers.GetMyAvailability)
}
