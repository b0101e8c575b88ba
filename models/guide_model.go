package models

import (
	"time"
	"github.com/google/uuid"
)

type Guide struct {
	UserID     uuid.UUID `gorm:"primary_key" json:"user_id"`
	Headline   *string   `gorm:"size:255" json:"headline"`
	Bio        *string   `gorm:"type:text" json:"bio"`
	Location   *string   `gorm:"size:100" json:"location"`
	Languages  *string   `gorm:"size:255" json:"languages"`
	HourlyRate float64   `gorm:"type:numeric(10,2);not null;default:0.00" json:"hourly_rate"`
	Status     string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
