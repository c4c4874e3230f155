package session

import (
	"reflect"
	"testing"

	"github.com/avolkov/slack-lite/internal/presence"
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

func (f *fakeTransport) to(channel string) []emit {
	var out []emit
	for _, e := range f.emits {
		if e.channel == channel {
			out = append(out, e)
		}
	}
	return out
}

func newTestManager() (*Manager, *fakeTransport) {
	transport := &fakeTransport{}
	return NewManager(presence.NewRegistry(), transport), transport
}

func TestJoinBroadcastsMemberList(t *testing.T) {
	m, transport := newTestManager()

	m.Join("conn1", "general", "alice")

	if len(transport.emits) != 1 {
		t.Fatalf("expected 1 emit, got %d", len(transport.emits))
	}
	e := transport.emits[0]
	if e.event != ws.EventUpdateUserList {
		t.Errorf("event = %q, want %q", e.event, ws.EventUpdateUserList)
	}
	if !reflect.DeepEqual(e.payload, []string{"alice"}) {
		t.Errorf("payload = %v, want [alice]", e.payload)
	}
}

func TestJoinSwitchesChannel(t *testing.T) {
	m, transport := newTestManager()

	m.Join("conn1", "general", "alice")
	m.Join("conn2", "general", "bob")
	transport.emits = nil

	m.Join("conn1", "random", "alice")

	general := transport.to("general")
	if len(general) != 1 {
		t.Fatalf("expected 1 updateUserList to general, got %d", len(general))
	}
	if !reflect.DeepEqual(general[0].payload, []string{"bob"}) {
		t.Errorf("general list = %v, want [bob]", general[0].payload)
	}

	random := transport.to("random")
	if len(random) != 1 {
		t.Fatalf("expected 1 updateUserList to random, got %d", len(random))
	}
	if !reflect.DeepEqual(random[0].payload, []string{"alice"}) {
		t.Errorf("random list = %v, want [alice]", random[0].payload)
	}
}

func TestRejoinSameChannelHasNoDuplicates(t *testing.T) {
	m, transport := newTestManager()

	m.Join("conn1", "general", "alice")
	transport.emits = nil

	m.Join("conn1", "general", "alice")

	if len(transport.emits) != 1 {
		t.Fatalf("expected 1 emit, got %d", len(transport.emits))
	}
	if !reflect.DeepEqual(transport.emits[0].payload, []string{"alice"}) {
		t.Errorf("list = %v, want [alice] with no duplicate", transport.emits[0].payload)
	}
}

func TestLeaveBroadcastsOnceToRemainder(t *testing.T) {
	m, transport := newTestManager()

	m.Join("conn1", "general", "alice")
	m.Join("conn2", "general", "bob")
	transport.emits = nil

	m.Leave("conn1")

	if len(transport.emits) != 1 {
		t.Fatalf("expected exactly 1 emit, got %d", len(transport.emits))
	}
	e := transport.emits[0]
	if e.channel != "general" || e.event != ws.EventUpdateUserList {
		t.Errorf("emit = %+v, want updateUserList to general", e)
	}
	if !reflect.DeepEqual(e.payload, []string{"bob"}) {
		t.Errorf("list = %v, want [bob]", e.payload)
	}
}

func TestLeaveWhenUnjoinedIsSilent(t *testing.T) {
	m, transport := newTestManager()

	m.Leave("conn1")

	if len(transport.emits) != 0 {
		t.Errorf("expected no emits, got %v", transport.emits)
	}
}

func TestTypingExcludesSender(t *testing.T) {
	m, transport := newTestManager()
	m.Join("conn1", "general", "alice")
	m.Join("conn2", "general", "bob")
	transport.emits = nil

	tests := []struct {
		name      string
		fire      func()
		wantEvent string
	}{
		{
			name:      "startTyping",
			fire:      func() { m.StartTyping("general", "alice", "conn1") },
			wantEvent: ws.EventUserTyping,
		},
		{
			name:      "stopTyping",
			fire:      func() { m.StopTyping("general", "alice", "conn1") },
			wantEvent: ws.EventUserStoppedTyping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport.emits = nil
			tt.fire()

			if len(transport.emits) != 1 {
				t.Fatalf("expected 1 emit, got %d", len(transport.emits))
			}
			e := transport.emits[0]
			if e.event != tt.wantEvent {
				t.Errorf("event = %q, want %q", e.event, tt.wantEvent)
			}
			if e.payload != "alice" {
				t.Errorf("payload = %v, want alice", e.payload)
			}
			if e.exclude != "conn1" {
				t.Errorf("exclude = %q, want the sender's connection", e.exclude)
			}
		})
	}
}
