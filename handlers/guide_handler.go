package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/tembea/local_guide/database"
	"github.com/tembea/local_guide/models"
	"github.com/tembea/local_guide/services"
	"github.com/tembea/local_guide/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuideApplicationRequest struct {
	Headline   string  `json:"headline" validate:"required"`
	Bio        string  `json:"bio" validate:"required"`
	Location   string  `json:"location" validate:"required"`
	Languages  *string `json:"languages,omitempty"`
	HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
}

func ApplyToBeAGuide(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req GuideApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existingGuide models.Guide
	err := database.DB.Where("user_id = ?", userID).First(&existingGuide).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You already have a guide profile."})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var newGuide models.Guide
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		newGuide = models.Guide{
			UserID:     userID,
			Headline:   &req.Headline,
			Bio:        &req.Bio,
			Location:   &req.Location,
			Languages:  req.Languages,
			HourlyRate: req.HourlyRate,
			Status:     "active",
		}
		if err := tx.Create(&newGuide).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("role", "guide").Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create guide profile"})
	}

	return c.Status(fiber.StatusCreated).JSON(newGuide)
}

type UpdateGuideProfileRequest struct {
	Headline   *string  `json:"headline,omitempty"`
	Bio        *string  `json:"bio,omitempty"`
	Location   *string  `json:"location,omitempty"`
	Languages  *string  `json:"languages,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gt=0"`
}

func UpdateMyGuideProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	var req UpdateGuideProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var guide models.Guide
	if err := database.DB.Where("user_id = ?", guideID).First(&guide).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Guide profile not found"})
	}

	if req.Headline != nil {
		guide.Headline = req.Headline
	}
	if req.Bio != nil {
		guide.Bio = req.Bio
	}
	if req.Location != nil {
		guide.Location = req.Location
	}
	if req.Languages != nil {
		guide.Languages = req.Languages
	}
	if req.HourlyRate != nil {
		guide.HourlyRate = *req.HourlyRate
	}

	if err := database.DB.Save(&guide).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update guide profile"})
	}
	return c.JSON(guide)
}

type ScheduleSlotRequest struct {
	DayOfWeek string `json:"day_of_week" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type SetScheduleRequest struct {
	Slots []ScheduleSlotRequest `json:"slots" validate:"dive"`
}

// SetMyAvailability replaces the guide's whole recurring schedule. Clients
// always PUT the full week; there is no per-slot edit.
func SetMyAvailability(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	var req SetScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	inputs := make([]services.SlotInput, 0, len(req.Slots))
	for _, s := range req.Slots {
		start, err := utils.ParseMinuteOfDay(s.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_time: " + s.StartTime})
		}
		end, err := utils.ParseMinuteOfDay(s.EndTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_time: " + s.EndTime})
		}
		inputs = append(inputs, services.SlotInput{
			DayOfWeek:   s.DayOfWeek,
			StartMinute: start,
			EndMinute:   end,
		})
	}

	schedule, err := availabilityStore.SetSchedule(guideID, inputs)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(schedule)
}

func GetMyAvailability(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	schedule, err := availabilityStore.GetSchedule(guideID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(schedule)
}

func GetGuideSchedule(c *fiber.Ctx) error {
	guideID, err := uuid.Parse(c.Params("guideId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid guide id"})
	}

	schedule, err := availabilityStore.GetSchedule(guideID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(schedule)
}

// CheckGuideAvailability answers whether a concrete window falls inside the
// guide's recurring schedule. It deliberately ignores existing bookings;
// conflicts only surface when a booking is actually requested.
func CheckGuideAvailability(c *fiber.Ctx) error {
	guideID, err := uuid.Parse(c.Params("guideId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid guide id"})
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or missing date, expected YYYY-MM-DD"})
	}
	startMinute, err := utils.ParseMinuteOfDay(c.Query("start_time"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or missing start_time, expected HH:MM"})
	}
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil || duration <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or missing duration, expected whole hours"})
	}

	available, err := availabilityStore.IsAvailable(guideID, date, startMinute, duration)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"is_available": available})
}

func ListActiveGuides(c *fiber.Ctx) error {
	var guides []models.Guide
	if err := database.DB.Preload("User").Where("status = ?", "active").Find(&guides).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch guides"})
	}
	return c.JSON(guides)
}

func GetGuideProfile(c *fiber.Ctx) error {
	guideID := c.Params("guideId")

	var guide models.Guide
	if err := database.DB.Preload("User").Where("user_id = ?", guideID).First(&guide).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Guide not found"})
	}
	return c.JSON(guide)
}

func GetGuideEarnings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	total, err := bookingLedger.GuideEarnings(guideID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"total_earnings": total})
}
