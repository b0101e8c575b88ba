package services

import (
	"time"

	"github.com/tembea/local_guide/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRequest is a tourist's attempt to book a guide for a concrete
// date-bound window.
type BookingRequest struct {
	GuideID         uuid.UUID
	TouristID       uuid.UUID
	Date            time.Time
	StartMinute     int
	DurationHours   int
	NumberOfPeople  int
	SpecialRequests *string
}

// MatchingEngine decides whether a booking request can be accepted. The
// availability check (recurring capacity) and the conflict check (instance-
// level overlap) stay separate concerns; both run inside the guide's
// critical section so two racing requests for the same window can never
// both succeed.
type MatchingEngine struct {
	db     *gorm.DB
	store  *AvailabilityStore
	ledger *BookingLedger
	locks  *GuideLocks
}

func NewMatchingEngine(db *gorm.DB, store *AvailabilityStore, ledger *BookingLedger, locks *GuideLocks) *MatchingEngine {
	return &MatchingEngine{db: db, store: store, ledger: ledger, locks: locks}
}

// RequestBooking runs the check-then-create sequence atomically per guide:
// reject if the window falls outside the recurring schedule (ErrUnavailable),
// reject if an active booking overlaps it (ErrConflict), otherwise record a
// pending booking priced at the guide's hourly rate. A failed step leaves no
// booking behind.
func (m *MatchingEngine) RequestBooking(req BookingRequest) (*models.Booking, error) {
	var guide models.Guide
	if err := m.db.First(&guide, "user_id = ?", req.GuideID).Error; err != nil {
		return nil, err
	}

	release, err := m.locks.Acquire(req.GuideID)
	if err != nil {
		return nil, err
	}
	defer release()

	available, err := m.store.IsAvailable(req.GuideID, req.Date, req.StartMinute, req.DurationHours)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrUnavailable
	}

	endMinute := req.StartMinute + req.DurationHours*60
	overlaps, err := m.ledger.hasOverlap(req.GuideID, req.Date, req.StartMinute, endMinute)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, ErrConflict
	}

	people := req.NumberOfPeople
	if people < 1 {
		people = 1
	}

	return m.ledger.Create(BookingDraft{
		GuideID:         req.GuideID,
		TouristID:       req.TouristID,
		Date:            req.Date,
		StartMinute:     req.StartMinute,
		DurationHours:   req.DurationHours,
		NumberOfPeople:  people,
		Price:           guide.HourlyRate * float64(req.DurationHours),
		SpecialRequests: req.SpecialRequests,
	})
}
