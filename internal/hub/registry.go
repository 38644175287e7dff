package hub

import (
	"sync"

	"github.com/jayprakash-mahato/dchat/internal/event"

	"go.uber.org/zap"
)

// Registry is the authoritative process-wide mapping from logical user ids
// to live connections. It is the single source of truth for liveness; no
// other component may infer liveness on its own.
//
// A user id maps to a set of connections, so the same account can be live
// from several tabs or devices at once. A connection belongs to at most
// one entry.
//
// Every operation is a short in-memory mutation under the lock. Nothing
// here blocks on I/O.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	logger  *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		clients: make(map[string]map[*Client]struct{}),
		logger:  logger,
	}
}

// Announce registers c as a live connection for userID. Insert-if-absent:
// announcing the same connection twice is a no-op. Returns true when the
// registry changed, so the caller knows whether to re-broadcast presence.
func (r *Registry) Announce(userID string, c *Client) bool {
	if userID == "" || c == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.clients[userID]
	if !ok {
		set = make(map[*Client]struct{})
		r.clients[userID] = set
	}
	if _, exists := set[c]; exists {
		return false
	}
	set[c] = struct{}{}

	r.logger.Info("user announced",
		zap.String("user_id", userID),
		zap.String("session_id", c.ID),
		zap.Int("connections", len(set)),
	)
	return true
}

// Resolve returns a snapshot of the connections registered for userID.
// An empty result is not an error; it means "deliver to sender only".
func (r *Registry) Resolve(userID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.clients[userID]
	if !ok {
		return nil
	}

	clients := make([]*Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	return clients
}

// Remove deregisters a connection, keyed by handle identity rather than
// user id so that removal never touches another connection of the same
// user. Safe to call for connections that never announced. Returns true
// when the registry changed.
func (r *Registry) Remove(c *Client) bool {
	if c == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, set := range r.clients {
		if _, exists := set[c]; !exists {
			continue
		}
		delete(set, c)
		if len(set) == 0 {
			delete(r.clients, userID)
		}

		r.logger.Info("user connection removed",
			zap.String("user_id", userID),
			zap.String("session_id", c.ID),
			zap.Int("connections", len(set)),
		)
		return true
	}
	return false
}

// Snapshot returns the current presence set for a presence-update frame.
func (r *Registry) Snapshot() []event.PresenceEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]event.PresenceEntry, 0, len(r.clients))
	for userID := range r.clients {
		entries = append(entries, event.PresenceEntry{UserID: userID})
	}
	return entries
}

// ConnectionCounts reports the number of live connections per user id.
func (r *Registry) ConnectionCounts() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int, len(r.clients))
	for userID, set := range r.clients {
		counts[userID] = len(set)
	}
	return counts
}
