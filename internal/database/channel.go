package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/avolkov/slack-lite/internal/models"
)

func (d *Database) CreateChannel(channel *models.Channel) error {
	return d.db.Create(channel).Error
}

func (d *Database) GetChannel(id string) (*models.Channel, error) {
	var channel models.Channel
	if err := d.db.First(&channel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &channel, nil
}

func (d *Database) FindChannelByName(name string) (*models.Channel, error) {
	var channel models.Channel
	if err := d.db.Where("name = ?", name).First(&channel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &channel, nil
}

// ListChannels returns every channel ordered by name.
func (d *Database) ListChannels() ([]models.Channel, error) {
	var channels []models.Channel
	if err := d.db.Order("name ASC").Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

// DeleteChannel removes a channel and its messages in one transaction.
func (d *Database) DeleteChannel(id string) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Message{}, "channel_id = ?", id).Error; err != nil {
			return err
		}

		var channel models.Channel
		if err := tx.First(&channel, "id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&channel).Error
	})
}
