package handlers

import (
	"time"

	"github.com/tembea/local_guide/services"
	"github.com/tembea/local_guide/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	GuideID         string  `json:"guide_id" validate:"required,uuid"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string  `json:"start_time" validate:"required"`
	DurationHours   int     `json:"duration_hours" validate:"required,min=1,max=24"`
	NumberOfPeople  int     `json:"number_of_people" validate:"omitempty,min=1"`
	SpecialRequests *string `json:"special_requests,omitempty"`
}

// CreateBooking runs a tourist's request through the matching engine. The
// response body is authoritative; clients never need a follow-up read to
// learn the booking's state.
func CreateBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	touristID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	guideID, _ := uuid.Parse(req.GuideID)
	if guideID == touristID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot book yourself"})
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	startMinute, err := utils.ParseMinuteOfDay(req.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_time, expected HH:MM"})
	}

	booking, err := matchingEngine.RequestBooking(services.BookingRequest{
		GuideID:         guideID,
		TouristID:       touristID,
		Date:            date,
		StartMinute:     startMinute,
		DurationHours:   req.DurationHours,
		NumberOfPeople:  req.NumberOfPeople,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
}

// UpdateBookingStatus applies one state-machine transition on behalf of the
// authenticated actor. Both guides and tourists go through this endpoint;
// the ledger decides who may take which edge.
func UpdateBookingStatus(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	actorID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := bookingLedger.Transition(bookingID, req.Status, actorID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	touristID, _ := uuid.Parse(claims["user_id"].(string))

	bookings, err := bookingLedger.ListForTourist(touristID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(bookings)
}

func GetMyGuideBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	bookings, err := bookingLedger.ListForGuide(guideID, c.Query("status"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(bookings)
}
