package models

import (
	"time"
	"github.com/google/uuid"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	GuideID         uuid.UUID `gorm:"not null;index" json:"guide_id"`
	TouristID       uuid.UUID `gorm:"not null;index" json:"tourist_id"`
	Date            time.Time `gorm:"type:date;not null" json:"date"`
	StartMinute     int       `gorm:"not null" json:"start_minute"`
	DurationHours   int       `gorm:"not null" json:"duration_hours"`
	NumberOfPeople  int       `gorm:"not null;default:1" json:"number_of_people"`
	Price           float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Status          string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	SpecialRequests *string   `gorm:"type:text" json:"special_requests"`

	Guide   User `gorm:"foreignkey:GuideID" json:"guide,omitempty"`
	Tourist User `gorm:"foreignkey:TouristID" json:"tourist,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndMinute is the exclusive end of the booked window within its day.
func (b *Booking) EndMinute() int {
	return b.StartMinute + b.DurationHours*60
}

// IsActive reports whether the booking still occupies its window exclusively.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
