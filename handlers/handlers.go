package handlers

import (
	"errors"
	"time"

	"github.com/tembea/local_guide/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	availabilityStore *services.AvailabilityStore
	bookingLedger     *services.BookingLedger
	matchingEngine    *services.MatchingEngine
)

// Init wires the core services onto the given database. Must be called once
// before any route is served.
func Init(db *gorm.DB) {
	locks := services.NewGuideLocks(2 * time.Second)
	availabilityStore = services.NewAvailabilityStore(db)
	bookingLedger = services.NewBookingLedger(db, locks)
	matchingEngine = services.NewMatchingEngine(db, availabilityStore, bookingLedger, locks)
}

func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidSchedule), errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUnavailable):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrBusy):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Resource not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
