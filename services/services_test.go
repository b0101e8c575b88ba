package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/tembea/local_guide/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 2026-09-07 is a Monday, 2026-09-08 a Tuesday.
var (
	testMonday  = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testTuesday = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Guide{},
		&models.AvailabilitySlot{},
		&models.Booking{},
		&models.Conversation{},
		&models.Message{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	user := models.User{
		ID:       id,
		FullName: "Test " + role,
		Email:    fmt.Sprintf("%s-%s@example.com", role, id),
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return id
}

func seedGuide(t *testing.T, db *gorm.DB, hourlyRate float64) uuid.UUID {
	t.Helper()

	id := seedUser(t, db, "guide")
	guide := models.Guide{
		UserID:     id,
		HourlyRate: hourlyRate,
		Status:     "active",
	}
	require.NoError(t, db.Create(&guide).Error)
	return id
}

type testCore struct {
	db      *gorm.DB
	locks   *GuideLocks
	store   *AvailabilityStore
	ledger  *BookingLedger
	matcher *MatchingEngine
}

func newTestCore(t *testing.T) *testCore {
	t.Helper()

	db := setupTestDB(t)
	locks := NewGuideLocks(2 * time.Second)
	store := NewAvailabilityStore(db)
	ledger := NewBookingLedger(db, locks)
	return &testCore{
		db:      db,
		locks:   locks,
		store:   store,
		ledger:  ledger,
		matcher: NewMatchingEngine(db, store, ledger, locks),
	}
}

// mondayNineToFive gives the guide a single Monday 09:00-17:00 recurring slot.
func mondayNineToFive(t *testing.T, core *testCore, guideID uuid.UUID) {
	t.Helper()

	_, err := core.store.SetSchedule(guideID, []SlotInput{
		{DayOfWeek: "Monday", StartMinute: 9 * 60, EndMinute: 17 * 60},
	})
	require.NoError(t, err)
}
