package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time

	// Deleting a user takes its messages and created channels with it.
	Messages []Message `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Channels []Channel `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE"`
}
