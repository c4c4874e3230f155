package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avolkov/slack-lite/internal/chat"
	"github.com/avolkov/slack-lite/internal/database"
	"github.com/avolkov/slack-lite/internal/middleware"
	"github.com/avolkov/slack-lite/internal/models"
	ws "github.com/avolkov/slack-lite/internal/websocket"
)

// historyLimit caps how much channel history the REST endpoint returns.
const historyLimit = 100

type ChannelHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewChannelHandler(db *database.Database, hub *ws.Hub) *ChannelHandler {
	return &ChannelHandler{db: db, hub: hub}
}

// ListChannels returns every channel ordered by name.
func (h *ChannelHandler) ListChannels(c *gin.Context) {
	channels, err := h.db.ListChannels()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch channels"})
		return
	}

	result := make([]gin.H, len(channels))
	for i, ch := range channels {
		result[i] = formatChannelResponse(&ch)
	}

	c.JSON(http.StatusOK, result)
}

// CreateChannel creates a channel and announces it to every connection.
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		Name string `json:"name" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel name is required"})
		return
	}

	channel := &models.Channel{
		Name:      req.Name,
		CreatorID: userID,
		CreatedAt: time.Now(),
	}

	if err := h.db.CreateChannel(channel); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create channel"})
		return
	}

	h.hub.EmitToAll(ws.EventNewChannel, formatChannelResponse(channel))

	c.JSON(http.StatusCreated, formatChannelResponse(channel))
}

// DeleteChannel removes a channel, creator only. Messages cascade with it
// and every connection hears channelDeleted.
func (h *ChannelHandler) DeleteChannel(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	channelID := c.Param("id")

	channel, err := h.db.GetChannel(channelID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "channel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete channel"})
		return
	}

	if channel.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the channel creator can delete it"})
		return
	}

	if err := h.db.DeleteChannel(channelID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete channel"})
		return
	}

	h.hub.EmitToAll(ws.EventChannelDeleted, channelID)

	c.JSON(http.StatusOK, gin.H{"message": "channel deleted"})
}

// GetChannelMessages returns the channel's history, ascending by creation
// time, authors embedded, capped at the 100 most recent.
func (h *ChannelHandler) GetChannelMessages(c *gin.Context) {
	channelID := c.Param("id")

	if _, err := h.db.GetChannel(channelID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "channel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch messages"})
		return
	}

	messages, err := h.db.ChannelMessages(channelID, historyLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch messages"})
		return
	}

	result := make([]chat.MessageResponse, len(messages))
	for i := range messages {
		result[i] = chat.NewMessageResponse(&messages[i], &messages[i].User)
	}

	c.JSON(http.StatusOK, result)
}

func formatChannelResponse(channel *models.Channel) gin.H {
	return gin.H{
		"id":        channel.ID,
		"name":      channel.Name,
		"creatorId": channel.CreatorID,
		"createdAt": channel.CreatedAt,
	}
}
