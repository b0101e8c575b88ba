package services

import (
	"testing"
	"time"

	"github.com/tembea/local_guide/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPendingBooking(t *testing.T, core *testCore, guideID, touristID uuid.UUID, startMinute int) *models.Booking {
	t.Helper()

	booking, err := core.ledger.Create(BookingDraft{
		GuideID:        guideID,
		TouristID:      touristID,
		Date:           testMonday,
		StartMinute:    startMinute,
		DurationHours:  2,
		NumberOfPeople: 2,
		Price:          40,
	})
	require.NoError(t, err)
	return booking
}

func TestCreateAssignsPendingAndTimestamp(t *testing.T) {
	core := newTestCore(t)
	guideID := seedGuide(t, core.db, 20)
	touristID := seedUser(t, core.db, "tourist")

	booking := createPendingBooking(t, core, guideID, touristID, 10*60)

	assert.NotEqual(t, uuid.Nil, booking.ID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.WithinDuration(t, time.Now(), booking.CreatedAt, 5*time.Second)
	assert.Equal(t, 12*60, booking.EndMinute())
}

func TestTransitionStateMachine(t *testing.T) {
	core := newTestCore(t)
	guideID := seedGuide(t, core.db, 20)
	touristID := seedUser(t, core.db, "tourist")

	tests := []struct {
		description string
		from        string
		to          string
		actor       string // "guide" or "tourist"
		wantErr     error
	}{
		{"guide confirms pending", models.BookingStatusPending, models.BookingStatusConfirmed, "guide", nil},
		{"guide declines pending", models.BookingStatusPending, models.BookingStatusCancelled, "guide", nil},
		{"tourist cancels pending", models.BookingStatusPending, models.BookingStatusCancelled, "tourist", nil},
		{"guide completes confirmed", models.BookingStatusConfirmed, models.BookingStatusCompleted, "guide", nil},
		{"tourist cancels confirmed", models.BookingStatusConfirmed, models.BookingStatusCancelled, "tourist", nil},
		{"tourist confirms pending", models.BookingStatusPending, models.BookingStatusConfirmed, "tourist", ErrForbidden},
		{"tourist completes confirmed", models.BookingStatusConfirmed, models.BookingStatusCompleted, "tourist", ErrForbidden},
		{"pending straight to completed", models.BookingStatusPending, models.BookingStatusCompleted, "guide", ErrInvalidTransition},
		{"completed is terminal", models.BookingStatusCompleted, models.BookingStatusCancelled, "guide", ErrInvalidTransition},
		{"cancelled is terminal", models.BookingStatusCancelled, models.BookingStatusConfirmed, "guide", ErrInvalidTransition},
		{"cancelled cannot complete", models.BookingStatusCancelled, models.BookingStatusCompleted, "guide", ErrInvalidTransition},
	}

	for _, test := range tests {
		booking := createPendingBooking(t, core, guideID, touristID, 10*60)
		require.NoError(t, core.db.Model(booking).Update("status", test.from).Error, test.description)

		actorID := guideID
		if test.actor == "tourist" {
			actorID = touristID
		}

		updated, err := core.ledger.Transition(booking.ID, test.to, actorID)
		if test.wantErr != nil {
			assert.ErrorIsf(t, err, test.wantErr, test.description)

			// a failed transition must not change stored state
			var stored models.Booking
			require.NoError(t, core.db.First(&stored, "id = ?", booking.ID).Error)
			assert.Equalf(t, test.from, stored.Status, test.description)
		} else {
			require.NoErrorf(t, err, test.description)
			assert.Equalf(t, test.to, updated.Status, test.description)
		}

		// keep windows from piling up between cases
		require.NoError(t, core.db.Model(booking).Update("status", models.BookingStatusCancelled).Error)
	}
}

func TestTransitionRejectsStranger(t *testing.T) {
	core := newTestCore(t)
	guideID := seedGuide(t, core.db, 20)
	touristID := seedUser(t, core.db, "tourist")
	strangerID := seedUser(t, core.db, "tourist")

	booking := createPendingBooking(t, core, guideID, touristID, 10*60)

	_, err := core.ledger.Transition(booking.ID, models.BookingStatusCancelled, strangerID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	core := newTestCore(t)
	guideID := seedGuide(t, core.db, 20)
	touristID := seedUser(t, core.db, "tourist")

	booking := createPendingBooking(t, core, guideID, touristID, 10*60)

	_, err := core.ledger.Transition(booking.ID, "reschedule_requested", guideID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestListForGuide(t *testing.T) {
	core := newTestCore(t)
	guideID := seedGuide(t, core.db, 20)
	touristID := seedUser(t, core.db, "tourist")

	first := createPendingBooking(t, core, guideID, touristID, 9*60)
	second := createPendingBooking(t, core, guideID, touristID, 12*60)
	require.NoError(t, core.db.Model(first).Update("created_at", time.Now().Add(-time.Hour)).Error)
	_, err := core.ledger.Transition(second.ID, models.BookingStatusConfirmed, guideID)
	require.NoError(t, err)

	bookings, err := core.ledger.ListForGuide(guideID, "")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, second.ID, bookings[0].ID, "most recent first")

	confirmed, err := core.ledger.ListForGuide(guideID, models.BookingStatusConfirmed)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, second.ID, confirmed[0].ID)
}

func TestListForTourist(t *testing.T) {
	core := newTestCore(t)
	guideID := seedGuide(t, core.db, 20)
	touristID := seedUser(t, core.db, "tourist")
	otherTouristID := seedUser(t, core.db, "tourist")

	mine := createPendingBooking(t, core, guideID, touristID, 9*60)
	createPendingBooking(t, core, guideID, otherTouristID, 12*60)

	bookings, err := core.ledger.ListForTourist(touristID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, mine.ID, bookings[0].ID)
}

func TestGuideEarningsCountsCompletedOnly(t *testing.T) {
	core := newTestCore(t)
	guideID := seedGuide(t, core.db, 20)
	touristID := seedUser(t, core.db, "tourist")

	completed := createPendingBooking(t, core, guideID, touristID, 9*60)
	require.NoError(t, core.db.Model(completed).Update("status", models.BookingStatusCompleted).Error)
	createPendingBooking(t, core, guideID, touristID, 12*60)

	total, err := core.ledger.GuideEarnings(guideID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, total)
}
