package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/avolkov/slack-lite/internal/middleware"
	ws "github.com/avolkov/slack-lite/internal/websocket"
)

// WebSocketHandler upgrades authenticated requests into hub connections.
type WebSocketHandler struct {
	hub      *ws.Hub
	router   *EventRouter
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, router *EventRouter) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		router: router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict origins once the deployment domain is fixed.
				return true
			},
		},
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	username := c.GetString(middleware.UsernameKey)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, userID.(uuid.UUID), username)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.router)
}
