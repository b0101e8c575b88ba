package models

import (
	"time"
	"github.com/google/uuid"
)

// AvailabilitySlot is one recurring weekly window in a guide's schedule.
// Times are minutes from midnight, half-open: [StartMinute, EndMinute).
type AvailabilitySlot struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	GuideID     uuid.UUID `gorm:"not null;index" json:"-"`
	DayOfWeek   string    `gorm:"size:10;not null" json:"day_of_week"`
	StartMinute int       `gorm:"not null" json:"start_minute"`
	EndMinute   int       `gorm:"not null" json:"end_minute"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
