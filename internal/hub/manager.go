package hub

import (
	"net/http"
	"sync"

	"github.com/jayprakash-mahato/dchat/internal/event"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub owns every live connection session, the presence registry and the
// relay engine. Presence broadcasts fan out to all sessions, announced or
// not, so a freshly connected client sees who is online before it
// announces itself.
type Hub struct {
	registry *Registry
	relay    *Relay
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[*Client]struct{}

	upgrader websocket.Upgrader
}

func NewHub(users UserFinder, allowedOrigins []string, logger *zap.Logger) *Hub {
	registry := NewRegistry(logger)
	h := &Hub{
		registry: registry,
		relay:    NewRelay(registry, users, logger),
		logger:   logger,
		sessions: make(map[*Client]struct{}),
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	return h
}

// Registry exposes the presence registry for monitoring.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// ServeWS upgrades the request and starts a new connection session.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := newClient(conn, h, h.logger)

	h.mu.Lock()
	h.sessions[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("session connected", zap.String("session_id", c.ID))

	go c.ReadMessages()
	go c.WriteMessages()
}

// announce moves a session from Connecting to Announced and, when the
// registry actually changed, pushes the updated presence set to everyone.
func (h *Hub) announce(c *Client, userID string) {
	if h.registry.Announce(userID, c) {
		h.broadcastPresence()
	}
}

// disconnect terminates a session: deregister (a no-op for sessions that
// never announced), then drop it from the session set and re-broadcast.
func (h *Hub) disconnect(c *Client) {
	changed := h.registry.Remove(c)

	h.mu.Lock()
	delete(h.sessions, c)
	h.mu.Unlock()

	h.logger.Info("session terminated", zap.String("session_id", c.ID))

	if changed {
		h.broadcastPresence()
	}
}

func (h *Hub) broadcastPresence() {
	ev, err := event.New(event.EventPresenceUpdate, event.PresenceUpdate{Users: h.registry.Snapshot()})
	if err != nil {
		h.logger.Error("failed to encode presence frame", zap.Error(err))
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.sessions))
	for c := range h.sessions {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(ev)
	}
}

// Stop closes every live session.
func (h *Hub) Stop() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.sessions))
	for c := range h.sessions {
		clients = append(clients, c)
	}
	h.sessions = make(map[*Client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}
