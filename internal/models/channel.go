package models

import (
	"time"

	"github.com/google/uuid"
)

type Channel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatorID uuid.UUID `gorm:"not null"`
	CreatedAt time.Time

	Creator  User      `gorm:"foreignKey:CreatorID"`
	Messages []Message `gorm:"foreignKey:ChannelID;constraint:OnDelete:CASCADE"`
}
