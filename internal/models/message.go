package models

import (
	"time"

	"github.com/google/uuid"
)

// Message carries either text content or an image URL, never both.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ChannelID uuid.UUID `gorm:"not null;index"`
	UserID    uuid.UUID `gorm:"not null"`
	Content   *string
	ImageURL  *string
	CreatedAt time.Time
	EditedAt  *time.Time

	User    User    `gorm:"foreignKey:UserID"`
	Channel Channel `gorm:"foreignKey:ChannelID"`
}
