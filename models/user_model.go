package models

import (
	"time"
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'tourist'" json:"role"`

	Conversations []*Conversation `gorm:"many2many:conversation_participants;" json:"-"`

	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`
	Nationality       *string `gorm:"size:100" json:"nationality"`
	TimeZone          *string `gorm:"size:100" json:"time_zone"`

	IsActive bool `gorm:"default:true" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
