package presence

import "sync"

// Entry is one live (connection, username) pair inside a channel.
type Entry struct {
	ConnID   string
	Username string
}

// Registry tracks which connections sit in which channel. It is memory only:
// nothing here survives a restart, and the durable store is never consulted.
type Registry struct {
	mu       sync.RWMutex
	channels map[string][]Entry // channel name -> entries in join order
	byConn   map[string]string  // connection id -> channel name
}

func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string][]Entry),
		byConn:   make(map[string]string),
	}
}

// Join registers the connection under channel, implicitly leaving any prior
// channel first. It returns the name and remaining usernames of the channel
// left (empty name if none) and the member list of the joined channel.
// Joining the channel the connection is already in is a no-op apart from the
// returned member list.
func (r *Registry) Join(connID, channel, username string) (left string, leftMembers []string, members []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prior, ok := r.byConn[connID]
	if ok && prior != channel {
		left = prior
		leftMembers = r.removeLocked(connID, prior)
	}

	r.byConn[connID] = channel

	entries := r.channels[channel]
	present := false
	for _, e := range entries {
		if e.ConnID == connID {
			present = true
			break
		}
	}
	if !present {
		r.channels[channel] = append(entries, Entry{ConnID: connID, Username: username})
	}

	return left, leftMembers, r.usernamesLocked(channel)
}

// Leave drops the connection from whatever channel it is in. The second
// return is false when the connection was not joined anywhere.
func (r *Registry) Leave(connID string) (channel string, members []string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	channel, ok = r.byConn[connID]
	if !ok {
		return "", nil, false
	}

	delete(r.byConn, connID)
	members = r.removeLocked(connID, channel)
	return channel, members, true
}

// Channel reports which channel the connection belongs to, if any.
func (r *Registry) Channel(connID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	channel, ok := r.byConn[connID]
	return channel, ok
}

// Members returns the usernames in channel in join order.
func (r *Registry) Members(channel string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.usernamesLocked(channel)
}

// Connections returns the connection ids currently in channel.
func (r *Registry) Connections(channel string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.channels[channel]
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ConnID)
	}
	return ids
}

func (r *Registry) removeLocked(connID, channel string) []string {
	entries := r.channels[channel]
	for i, e := range entries {
		if e.ConnID == connID {
			entries = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if len(entries) == 0 {
		delete(r.channels, channel)
	} else {
		r.channels[channel] = entries
	}
	return r.usernamesLocked(channel)
}

func (r *Registry) usernamesLocked(channel string) []string {
	entries := r.channels[channel]
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Username)
	}
	return names
}
