package session

import (
	"github.com/avolkov/slack-lite/internal/presence"
	ws "github.com/avolkov/slack-lite/internal/websocket"
)

// Transport is the slice of the hub the session manager needs.
type Transport interface {
	EmitToChannel(channel, event string, payload interface{}, exclude string)
}

// Manager drives join/leave transitions and typing relays. All membership
// state lives in the presence registry; the manager only sequences registry
// calls and the resulting broadcasts. The registry locks internally, so no
// broadcast ever happens under its lock.
type Manager struct {
	registry  *presence.Registry
	transport Transport
}

func NewManager(registry *presence.Registry, transport Transport) *Manager {
	return &Manager{registry: registry, transport: transport}
}

// Join moves the connection into channel, implicitly leaving any prior one,
// then pushes the fresh member list to everyone affected. Re-joining the
// same channel is idempotent.
func (m *Manager) Join(connID, channel, username string) {
	left, leftMembers, members := m.registry.Join(connID, channel, username)

	if left != "" {
		m.transport.EmitToChannel(left, ws.EventUpdateUserList, leftMembers, "")
	}

	m.transport.EmitToChannel(channel, ws.EventUpdateUserList, members, "")
}

// Leave drops the connection from its channel, if any, and tells the
// remaining members. Explicit logout and transport disconnect both land here.
func (m *Manager) Leave(connID string) {
	channel, members, ok := m.registry.Leave(connID)
	if !ok {
		return
	}

	m.transport.EmitToChannel(channel, ws.EventUpdateUserList, members, "")
}

// StartTyping relays a typing indicator to everyone in channel except the
// typist. Nothing is persisted; expiry is the client's job, and an explicit
// StopTyping is accepted at any time.
func (m *Manager) StartTyping(channel, username, connID string) {
	m.transport.EmitToChannel(channel, ws.EventUserTyping, username, connID)
}

// StopTyping clears the indicator for everyone except the typist.
func (m *Manager) StopTyping(channel, username, connID string) {
	m.transport.EmitToChannel(channel, ws.EventUserStoppedTyping, username, connID)
}
