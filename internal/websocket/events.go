package websocket

import "encoding/json"

// Wire event names. These are part of the client contract and must not change.
const (
	// Client -> server
	EventJoinChannel = "joinChannel"
	EventStartTyping = "startTyping"
	EventStopTyping  = "stopTyping"
	EventLogout      = "logout"
	EventChatMessage = "chatMessage"

	// Server -> client
	EventUpdateUserList    = "updateUserList"
	EventUserTyping        = "userTyping"
	EventUserStoppedTyping = "userStoppedTyping"
	EventMessageUpdated    = "messageUpdated"
	EventNewChannel        = "newChannel"
	EventChannelDeleted    = "channelDeleted"
)

// Envelope is the framing for every message on the socket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EncodeEvent wraps payload in an Envelope and marshals the whole frame.
func EncodeEvent(event string, payload interface{}) ([]byte, error) {
	env := Envelope{Event: event}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}

	return json.Marshal(env)
}

// SessionObserver receives connection lifecycle transitions and decoded
// client events. OnClose fires exactly once per connection, for both clean
// and abrupt disconnects.
type SessionObserver interface {
	OnOpen(c *Client)
	OnClose(c *Client)
	OnEvent(c *Client, event string, data json.RawMessage)
}
