package websocket

import (
	"context"
	"log"
	"sync"
)

// Memberships resolves a channel name to the connection ids currently in it.
// Satisfied by the presence registry.
type Memberships interface {
	Connections(channel string) []string
}

// Hub owns every live connection and fans events out to one connection, a
// channel, or everyone. It guarantees delivery only to connections that are
// still open at emit time; a connection closing mid-emit is skipped.
type Hub struct {
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client

	members  Memberships
	observer SessionObserver

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(members Memberships) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		members:    members,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SetObserver wires the session observer. Must be called before Run.
func (h *Hub) SetObserver(observer SessionObserver) {
	h.observer = observer
}

// Run processes connection registration until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// Stop shuts the hub down and closes every live connection.
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
	h.clients = make(map[string]*Client)
}

// Register hands a new connection to the hub.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Unregister detaches a connection. Safe to call for an already-detached one
// or after the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	log.Printf("client connected: %s (user %s)", client.ID, client.Username)

	if h.observer != nil {
		h.observer.OnOpen(client)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client.ID]
	if ok {
		delete(h.clients, client.ID)
		close(client.Send)
	}
	h.mu.Unlock()

	if !ok {
		return
	}

	log.Printf("client disconnected: %s (user %s)", client.ID, client.Username)

	// Observer runs outside the lock: leave handling broadcasts back
	// through the hub.
	if h.observer != nil {
		h.observer.OnClose(client)
	}
}

// EmitToConnection sends one event to one connection. Unknown ids are ignored.
func (h *Hub) EmitToConnection(id, event string, payload interface{}) {
	frame, err := EncodeEvent(event, payload)
	if err != nil {
		log.Printf("encode %s: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, ok := h.clients[id]; ok {
		h.send(client, frame)
	}
}

// EmitToChannel sends one event to every connection in the channel, skipping
// exclude when non-empty.
func (h *Hub) EmitToChannel(channel, event string, payload interface{}, exclude string) {
	frame, err := EncodeEvent(event, payload)
	if err != nil {
		log.Printf("encode %s: %v", event, err)
		return
	}

	ids := h.members.Connections(channel)

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, id := range ids {
		if id == exclude {
			continue
		}
		if client, ok := h.clients[id]; ok {
			h.send(client, frame)
		}
	}
}

// EmitToAll sends one event to every live connection.
func (h *Hub) EmitToAll(event string, payload interface{}) {
	frame, err := EncodeEvent(event, payload)
	if err != nil {
		log.Printf("encode %s: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		h.send(client, frame)
	}
}

func (h *Hub) send(client *Client, frame []byte) {
	select {
	case client.Send <- frame:
	default:
		log.Printf("client %s send queue full, dropping frame", client.ID)
	}
}
