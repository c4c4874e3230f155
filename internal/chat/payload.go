package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/slack-lite/internal/models"
)

// UserInfo is the author summary embedded in broadcast messages.
type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// MessageResponse is a persisted message enriched with its author, as sent
// over the socket and from the history endpoint. Content and ImageURL are
// always present so clients can rely on explicit nulls.
type MessageResponse struct {
	ID        uuid.UUID  `json:"id"`
	ChannelID uuid.UUID  `json:"channelId"`
	UserID    uuid.UUID  `json:"userId"`
	Content   *string    `json:"content"`
	ImageURL  *string    `json:"imageUrl"`
	CreatedAt time.Time  `json:"createdAt"`
	EditedAt  *time.Time `json:"editedAt,omitempty"`
	User      UserInfo   `json:"user"`
}

func NewMessageResponse(msg *models.Message, author *models.User) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		ChannelID: msg.ChannelID,
		UserID:    msg.UserID,
		Content:   msg.Content,
		ImageURL:  msg.ImageURL,
		CreatedAt: msg.CreatedAt,
		EditedAt:  msg.EditedAt,
		User:      UserInfo{ID: author.ID, Username: author.Username},
	}
}
