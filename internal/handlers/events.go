package handlers

import (
	"encoding/json"
	"log"

	"github.com/avolkov/slack-lite/internal/chat"
	"github.com/avolkov/slack-lite/internal/session"
	ws "github.com/avolkov/slack-lite/internal/websocket"
)

// EventRouter turns wire events into session and pipeline calls. It is the
// hub's SessionObserver: OnClose and the logout event converge on the same
// leave path. The sender identity always comes from the verified token, not
// from the payload.
type EventRouter struct {
	session  *session.Manager
	pipeline *chat.Pipeline
}

func NewEventRouter(sessionMgr *session.Manager, pipeline *chat.Pipeline) *EventRouter {
	return &EventRouter{session: sessionMgr, pipeline: pipeline}
}

func (r *EventRouter) OnOpen(c *ws.Client) {
	// Membership starts at the first joinChannel, not at connect.
}

func (r *EventRouter) OnClose(c *ws.Client) {
	r.session.Leave(c.ID)
}

func (r *EventRouter) OnEvent(c *ws.Client, event string, data json.RawMessage) {
	switch event {
	case ws.EventJoinChannel:
		var payload struct {
			ChannelName string `json:"channelName"`
			Username    string `json:"username"`
		}
		if err := ws.DecodePayload(data, &payload); err != nil || payload.ChannelName == "" {
			log.Printf("joinChannel from %s: bad payload", c.ID)
			return
		}
		r.session.Join(c.ID, payload.ChannelName, c.Username)

	case ws.EventStartTyping:
		var payload typingPayload
		if err := ws.DecodePayload(data, &payload); err != nil || payload.Channel == "" {
			return
		}
		r.session.StartTyping(payload.Channel, c.Username, c.ID)

	case ws.EventStopTyping:
		var payload typingPayload
		if err := ws.DecodePayload(data, &payload); err != nil || payload.Channel == "" {
			return
		}
		r.session.StopTyping(payload.Channel, c.Username, c.ID)

	case ws.EventLogout:
		r.session.Leave(c.ID)

	case ws.EventChatMessage:
		var payload struct {
			Channel  string `json:"channel"`
			User     string `json:"user"`
			Text     string `json:"text"`
			ImageURL string `json:"imageUrl"`
		}
		if err := ws.DecodePayload(data, &payload); err != nil {
			log.Printf("chatMessage from %s: bad payload", c.ID)
			return
		}
		// Fire-and-forget: failures are logged, never sent back.
		if err := r.pipeline.Submit(payload.Channel, c.Username, payload.Text, payload.ImageURL); err != nil {
			log.Printf("drop chatMessage from %s: %v", c.Username, err)
		}

	default:
		log.Printf("unknown event %q from %s", event, c.ID)
	}
}

type typingPayload struct {
	Channel string `json:"channel"`
	User    string `json:"user"`
}
