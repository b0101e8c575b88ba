package services

import (
	"time"

	"github.com/tembea/local_guide/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// legal status edges; terminal states have no entry.
var allowedTransitions = map[string]map[string]bool{
	models.BookingStatusPending: {
		models.BookingStatusConfirmed: true,
		models.BookingStatusCancelled: true,
	},
	models.BookingStatusConfirmed: {
		models.BookingStatusCompleted: true,
		models.BookingStatusCancelled: true,
	},
}

// edges only the owning guide may take.
var guideOnlyTransitions = map[string]bool{
	models.BookingStatusConfirmed: true,
	models.BookingStatusCompleted: true,
}

// BookingDraft carries everything needed to create a pending booking. The
// matching engine is the only producer; it validates availability and
// conflicts before handing a draft over.
type BookingDraft struct {
	GuideID         uuid.UUID
	TouristID       uuid.UUID
	Date            time.Time
	StartMinute     int
	DurationHours   int
	NumberOfPeople  int
	Price           float64
	SpecialRequests *string
}

// BookingLedger owns booking records and enforces the status state machine.
// Bookings are never deleted; cancelled and completed ones are kept for
// history and earnings aggregation.
type BookingLedger struct {
	db    *gorm.DB
	locks *GuideLocks
}

func NewBookingLedger(db *gorm.DB, locks *GuideLocks) *BookingLedger {
	return &BookingLedger{db: db, locks: locks}
}

// Create records a new pending booking. Conflict checking is the matching
// engine's job; Create trusts its caller.
func (l *BookingLedger) Create(draft BookingDraft) (*models.Booking, error) {
	booking := models.Booking{
		ID:              uuid.New(),
		GuideID:         draft.GuideID,
		TouristID:       draft.TouristID,
		Date:            DateOnly(draft.Date),
		StartMinute:     draft.StartMinute,
		DurationHours:   draft.DurationHours,
		NumberOfPeople:  draft.NumberOfPeople,
		Price:           draft.Price,
		Status:          models.BookingStatusPending,
		SpecialRequests: draft.SpecialRequests,
	}
	if err := l.db.Create(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// Transition applies one state-machine edge on behalf of an actor. It runs
// inside the guide's critical section so it never races with the matching
// engine's conflict check. Cancelling a confirmed booking frees its window
// for future requests automatically, since conflict checks only consider
// pending and confirmed bookings.
func (l *BookingLedger) Transition(bookingID uuid.UUID, newStatus string, actorID uuid.UUID) (*models.Booking, error) {
	var probe models.Booking
	if err := l.db.First(&probe, "id = ?", bookingID).Error; err != nil {
		return nil, err
	}

	release, err := l.locks.Acquire(probe.GuideID)
	if err != nil {
		return nil, err
	}
	defer release()

	// re-read inside the critical section; the probe may be stale
	var booking models.Booking
	if err := l.db.First(&booking, "id = ?", bookingID).Error; err != nil {
		return nil, err
	}

	if actorID != booking.GuideID && actorID != booking.TouristID {
		return nil, ErrForbidden
	}
	if !allowedTransitions[booking.Status][newStatus] {
		return nil, ErrInvalidTransition
	}
	if guideOnlyTransitions[newStatus] && actorID != booking.GuideID {
		return nil, ErrForbidden
	}

	booking.Status = newStatus
	if err := l.db.Save(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListForGuide returns the guide's bookings, most recent first, optionally
// filtered by status. Lock-free read; a slightly stale view is acceptable.
func (l *BookingLedger) ListForGuide(guideID uuid.UUID, statusFilter string) ([]models.Booking, error) {
	query := l.db.Where("guide_id = ?", guideID)
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}
	var bookings []models.Booking
	if err := query.Order("created_at desc").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListForTourist returns the tourist's bookings, most recent first.
func (l *BookingLedger) ListForTourist(touristID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := l.db.Where("tourist_id = ?", touristID).Order("created_at desc").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// GuideEarnings sums the price of the guide's completed bookings.
func (l *BookingLedger) GuideEarnings(guideID uuid.UUID) (float64, error) {
	var total float64
	err := l.db.Model(&models.Booking{}).
		Where("guide_id = ? AND status = ?", guideID, models.BookingStatusCompleted).
		Select("COALESCE(SUM(price), 0)").
		Scan(&total).Error
	return total, err
}

// hasOverlap reports whether any active booking for the guide on the given
// date intersects the half-open window [startMinute, endMinute). Must be
// called inside the guide's critical section to be authoritative.
func (l *BookingLedger) hasOverlap(guideID uuid.UUID, date time.Time, startMinute, endMinute int) (bool, error) {
	var count int64
	err := l.db.Model(&models.Booking{}).
		Where("guide_id = ? AND date = ? AND status IN ?",
			guideID, DateOnly(date), []string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Where("start_minute < ? AND start_minute + duration_hours * 60 > ?", endMinute, startMinute).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
