package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/tembea/local_guide/database"
	"github.com/tembea/local_guide/handlers"
	"github.com/tembea/local_guide/models"
	"github.com/tembea/local_guide/routes"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "handler-test-secret"

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	require.NoError(t, os.Setenv("JWT_SECRET", testSecret))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Guide{},
		&models.AvailabilitySlot{},
		&models.Booking{},
	))
	database.DB = db
	handlers.Init(db)

	app := fiber.New()
	routes.GuideRoutes(app)
	routes.BookingRoutes(app)
	return app
}

func seedUser(t *testing.T, role string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	user := models.User{
		ID:       id,
		FullName: "Test " + role,
		Email:    fmt.Sprintf("%s-%s@example.com", role, id),
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return id
}

func seedGuide(t *testing.T, hourlyRate float64) uuid.UUID {
	t.Helper()

	id := seedUser(t, "guide")
	guide := models.Guide{UserID: id, HourlyRate: hourlyRate, Status: "active"}
	require.NoError(t, database.DB.Create(&guide).Error)
	return id
}

func tokenFor(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
}

func TestBookingFlow(t *testing.T) {
	app := setupApp(t)

	guideID := seedGuide(t, 30)
	guideToken := tokenFor(t, guideID, "guide")
	touristID := seedUser(t, "tourist")
	touristToken := tokenFor(t, touristID, "tourist")

	// guide publishes a Monday 09:00-17:00 recurring schedule
	res := doJSON(t, app, "PUT", "/api/v1/guide/availability", guideToken, fiber.Map{
		"slots": []fiber.Map{
			{"day_of_week": "Monday", "start_time": "09:00", "end_time": "17:00"},
		},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	// the availability probe sees Monday but not Tuesday (2026-09-07 is a Monday)
	res = doJSON(t, app, "GET", "/api/v1/guides/"+guideID.String()+"/availability?date=2026-09-07&start_time=10:00&duration=2", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var probe struct {
		IsAvailable bool `json:"is_available"`
	}
	decodeBody(t, res, &probe)
	assert.True(t, probe.IsAvailable)

	res = doJSON(t, app, "GET", "/api/v1/guides/"+guideID.String()+"/availability?date=2026-09-08&start_time=10:00&duration=2", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	decodeBody(t, res, &probe)
	assert.False(t, probe.IsAvailable)

	// tourist books Monday 10:00 for two hours
	res = doJSON(t, app, "POST", "/api/v1/bookings", touristToken, fiber.Map{
		"guide_id":       guideID.String(),
		"date":           "2026-09-07",
		"start_time":     "10:00",
		"duration_hours": 2,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var booking models.Booking
	decodeBody(t, res, &booking)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, 60.0, booking.Price)

	// a second tourist racing for an overlapping window is rejected
	otherToken := tokenFor(t, seedUser(t, "tourist"), "tourist")
	res = doJSON(t, app, "POST", "/api/v1/bookings", otherToken, fiber.Map{
		"guide_id":       guideID.String(),
		"date":           "2026-09-07",
		"start_time":     "10:30",
		"duration_hours": 1,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// a window outside the recurring schedule is unavailable, not a conflict
	res = doJSON(t, app, "POST", "/api/v1/bookings", otherToken, fiber.Map{
		"guide_id":       guideID.String(),
		"date":           "2026-09-08",
		"start_time":     "10:00",
		"duration_hours": 2,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	// only the guide may confirm
	statusPath := "/api/v1/bookings/" + booking.ID.String() + "/status"
	res = doJSON(t, app, "PATCH", statusPath, touristToken, fiber.Map{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res = doJSON(t, app, "PATCH", statusPath, guideToken, fiber.Map{"status": "confirmed"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	decodeBody(t, res, &booking)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

	res = doJSON(t, app, "PATCH", statusPath, guideToken, fiber.Map{"status": "completed"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	// completed is terminal
	res = doJSON(t, app, "PATCH", statusPath, guideToken, fiber.Map{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// the tourist sees the booking in their own list
	res = doJSON(t, app, "GET", "/api/v1/bookings/me", touristToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var mine []models.Booking
	decodeBody(t, res, &mine)
	require.Len(t, mine, 1)

	// the guide's earnings reflect the completed booking
	res = doJSON(t, app, "GET", "/api/v1/guide/earnings", guideToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var earnings struct {
		TotalEarnings float64 `json:"total_earnings"`
	}
	decodeBody(t, res, &earnings)
	assert.Equal(t, 60.0, earnings.TotalEarnings)
}

func TestSetAvailabilityRejectsOverlap(t *testing.T) {
	app := setupApp(t)

	guideID := seedGuide(t, 30)
	guideToken := tokenFor(t, guideID, "guide")

	res := doJSON(t, app, "PUT", "/api/v1/guide/availability", guideToken, fiber.Map{
		"slots": []fiber.Map{
			{"day_of_week": "Monday", "start_time": "09:00", "end_time": "12:00"},
			{"day_of_week": "Monday", "start_time": "11:00", "end_time": "14:00"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestBookingRequiresAuth(t *testing.T) {
	app := setupApp(t)

	res := doJSON(t, app, "POST", "/api/v1/bookings", "", fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode) // missing JWT
}
