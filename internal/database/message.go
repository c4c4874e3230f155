package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/avolkov/slack-lite/internal/models"
)

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

func (d *Database) GetMessage(id string) (*models.Message, error) {
	var message models.Message
	err := d.db.Preload("User").Preload("Channel").First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (d *Database) UpdateMessage(message *models.Message) error {
	return d.db.Save(message).Error
}

// ChannelMessages returns up to limit messages in creation order with authors loaded.
func (d *Database) ChannelMessages(channelID string, limit int) ([]models.Message, error) {
	var messages []models.Message

	err := d.db.
		Where("channel_id = ?", channelID).
		Order("created_at ASC").
		Limit(limit).
		Preload("User").
		Find(&messages).Error

	if err != nil {
		return nil, err
	}

	return messages, nil
}
