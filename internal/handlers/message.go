package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avolkov/slack-lite/internal/chat"
	"github.com/avolkov/slack-lite/internal/middleware"
	"github.com/avolkov/slack-lite/internal/models"
)

type MessageHandler struct {
	pipeline *chat.Pipeline
}

func NewMessageHandler(pipeline *chat.Pipeline) *MessageHandler {
	return &MessageHandler{pipeline: pipeline}
}

// UpdateMessage edits a message's content. Unlike socket submission this
// path does report errors: author-only, 404 when the message is gone.
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	messageID := c.Param("id")

	var req struct {
		Content string `json:"content" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.pipeline.Edit(messageID, req.Content, userID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		case errors.Is(err, models.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "you can only edit your own messages"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to edit message"})
		}
		return
	}

	c.JSON(http.StatusOK, chat.NewMessageResponse(message, &message.User))
}
