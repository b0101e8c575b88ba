package routes

import (
	"github.com/tembea/local_guide/handlers"
	"github.com/tembea/local_guide/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Post("", handlers.CreateBooking)
	booking.Patch("/:bookingId/status", handlers.UpdateBookingStatus)
}
