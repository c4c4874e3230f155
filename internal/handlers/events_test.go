package handlers

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/avolkov/slack-lite/internal/chat"
	"github.com/avolkov/slack-lite/internal/models"
	"github.com/avolkov/slack-lite/internal/presence"
	"github.com/avolkov/slack-lite/internal/session"
	ws "github.com/avolkov/slack-lite/internal/websocket"
)

type emit struct {
	channel string
	event   string
	payload interface{}
	exclude string
}

type fakeTransport struct {
	emits []emit
}

func (f *fakeTransport) EmitToChannel(channel, event string, payload interface{}, exclude string) {
	f.emits = append(f.emits, emit{channel: channel, event: event, payload: payload, exclude: exclude})
}

type memStore struct {
	users    map[string]*models.User
	channels map[string]*models.Channel
	messages map[string]*models.Message
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*models.User),
		channels: make(map[string]*models.Channel),
		messages: make(map[string]*models.Message),
	}
}

func (s *memStore) FindUserByUsername(username string) (*models.User, error) {
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

func (s *memStore) FindChannelByName(name string) (*models.Channel, error) {
	if c, ok := s.channels[name]; ok {
		return c, nil
	}
	return nil, models.ErrNotFound
}

func (s *memStore) SaveMessage(m *models.Message) error {
	m.ID = uuid.New()
	s.messages[m.ID.String()] = m
	return nil
}

func (s *memStore) GetMessage(id string) (*models.Message, error) {
	if m, ok := s.messages[id]; ok {
		return m, nil
	}
	return nil, models.ErrNotFound
}

func (s *memStore) UpdateMessage(m *models.Message) error {
	s.messages[m.ID.String()] = m
	return nil
}

func raw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return data
}

func newTestRouter(store *memStore) (*EventRouter, *fakeTransport) {
	transport := &fakeTransport{}
	registry := presence.NewRegistry()
	return NewEventRouter(
		session.NewManager(registry, transport),
		chat.NewPipeline(store, transport),
	), transport
}

func testClient(username string) *ws.Client {
	return &ws.Client{ID: uuid.NewString(), UserID: uuid.New(), Username: username}
}

func TestRouterJoinAndLogout(t *testing.T) {
	router, transport := newTestRouter(newMemStore())
	alice := testClient("alice")
	bob := testClient("bob")

	router.OnEvent(alice, ws.EventJoinChannel, raw(t, map[string]string{"channelName": "general", "username": "alice"}))
	router.OnEvent(bob, ws.EventJoinChannel, raw(t, map[string]string{"channelName": "general", "username": "bob"}))

	last := transport.emits[len(transport.emits)-1]
	if last.event != ws.EventUpdateUserList {
		t.Fatalf("event = %q, want updateUserList", last.event)
	}
	if !reflect.DeepEqual(last.payload, []string{"alice", "bob"}) {
		t.Errorf("member list = %v, want [alice bob]", last.payload)
	}

	transport.emits = nil
	router.OnEvent(alice, ws.EventLogout, nil)

	if len(transport.emits) != 1 {
		t.Fatalf("expected 1 emit after logout, got %d", len(transport.emits))
	}
	if !reflect.DeepEqual(transport.emits[0].payload, []string{"bob"}) {
		t.Errorf("member list = %v, want [bob]", transport.emits[0].payload)
	}
}

func TestRouterCloseConvergesWithLogout(t *testing.T) {
	router, transport := newTestRouter(newMemStore())
	alice := testClient("alice")
	bob := testClient("bob")

	router.OnEvent(alice, ws.EventJoinChannel, raw(t, map[string]string{"channelName": "general"}))
	router.OnEvent(bob, ws.EventJoinChannel, raw(t, map[string]string{"channelName": "general"}))
	transport.emits = nil

	router.OnClose(alice)

	if len(transport.emits) != 1 {
		t.Fatalf("expected exactly 1 updateUserList after disconnect, got %d", len(transport.emits))
	}
	if !reflect.DeepEqual(transport.emits[0].payload, []string{"bob"}) {
		t.Errorf("member list = %v, want [bob]", transport.emits[0].payload)
	}

	// Closing again must stay silent.
	router.OnClose(alice)
	if len(transport.emits) != 1 {
		t.Error("second OnClose broadcast again")
	}
}

func TestRouterChatMessage(t *testing.T) {
	store := newMemStore()
	store.users["alice"] = &models.User{ID: uuid.New(), Username: "alice"}
	store.channels["general"] = &models.Channel{ID: uuid.New(), Name: "general"}
	router, transport := newTestRouter(store)
	alice := testClient("alice")

	router.OnEvent(alice, ws.EventJoinChannel, raw(t, map[string]string{"channelName": "general"}))
	transport.emits = nil

	router.OnEvent(alice, ws.EventChatMessage, raw(t, map[string]string{
		"channel": "general", "user": "alice", "text": "hi",
	}))

	if len(store.messages) != 1 {
		t.Fatalf("expected 1 persisted message, got %d", len(store.messages))
	}
	if len(transport.emits) != 1 {
		t.Fatalf("expected 1 chatMessage emit, got %d", len(transport.emits))
	}
	resp := transport.emits[0].payload.(chat.MessageResponse)
	if resp.Content == nil || *resp.Content != "hi" {
		t.Errorf("content = %v, want hi", resp.Content)
	}
}

func TestRouterChatMessageSilentDrop(t *testing.T) {
	store := newMemStore()
	router, transport := newTestRouter(store)
	alice := testClient("alice")

	// Neither the user nor the channel exist; the event must vanish quietly.
	router.OnEvent(alice, ws.EventChatMessage, raw(t, map[string]string{
		"channel": "general", "user": "alice", "text": "hi",
	}))

	if len(store.messages) != 0 {
		t.Error("dropped event was persisted")
	}
	if len(transport.emits) != 0 {
		t.Error("dropped event was broadcast")
	}
}

func TestRouterTyping(t *testing.T) {
	router, transport := newTestRouter(newMemStore())
	alice := testClient("alice")

	router.OnEvent(alice, ws.EventJoinChannel, raw(t, map[string]string{"channelName": "general"}))
	transport.emits = nil

	router.OnEvent(alice, ws.EventStartTyping, raw(t, map[string]string{"channel": "general", "user": "alice"}))
	router.OnEvent(alice, ws.EventStopTyping, raw(t, map[string]string{"channel": "general", "user": "alice"}))

	if len(transport.emits) != 2 {
		t.Fatalf("expected 2 emits, got %d", len(transport.emits))
	}
	start, stop := transport.emits[0], transport.emits[1]
	if start.event != ws.EventUserTyping || start.payload != "alice" || start.exclude != alice.ID {
		t.Errorf("startTyping relay = %+v, want userTyping(alice) excluding sender", start)
	}
	if stop.event != ws.EventUserStoppedTyping || stop.payload != "alice" || stop.exclude != alice.ID {
		t.Errorf("stopTyping relay = %+v, want userStoppedTyping(alice) excluding sender", stop)
	}
}

func TestRouterIgnoresMalformedEvents(t *testing.T) {
	router, transport := newTestRouter(newMemStore())
	alice := testClient("alice")

	router.OnEvent(alice, ws.EventJoinChannel, nil)
	router.OnEvent(alice, ws.EventJoinChannel, raw(t, map[string]string{"channelName": ""}))
	router.OnEvent(alice, ws.EventStartTyping, json.RawMessage(`not-json`))
	router.OnEvent(alice, "unknownEvent", nil)

	if len(transport.emits) != 0 {
		t.Errorf("malformed events produced emits: %v", transport.emits)
	}
}
