// Package sse fans session updates out to connected live clients.
package sse

import (
	"maps"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultSendTimeout bounds how long a broadcast waits on one slow client
const DefaultSendTimeout = 2 * time.Second

// clientBuffer lets a client fall a few updates behind before sends block
const clientBuffer = 8

// Message is one event pushed to a client
type Message struct {
	Event string
	Data  []byte
}

// Hub tracks the live clients of every session
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[chan Message]string // session id -> client -> user id
	timeout  time.Duration
}

// NewHub creates a hub; timeout <= 0 selects DefaultSendTimeout
func NewHub(timeout time.Duration) *Hub {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	return &Hub{
		sessions: make(map[string]map[chan Message]string),
		timeout:  timeout,
	}
}

// Subscribe registers a new client of userID on a session
func (h *Hub) Subscribe(sessionID, userID string) chan Message {
	client := make(chan Message, clientBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.sessions[sessionID]
	if !ok {
		clients = make(map[chan Message]string)
		h.sessions[sessionID] = clients
	}

	// Warn if the same player has multiple connections
	dup := 0
	for _, uid := range clients {
		if uid == userID {
			dup++
		}
	}
	if dup > 0 {
		log.Warn().Str("module", "sse").Str("session", sessionID).Str("user", userID).
			Int("existing", dup).Msg("player opened an additional live connection")
	}
	clients[client] = userID
	return client
}

// Unsubscribe removes a client. The channel is not closed because a
// broadcast may still hold it; pending sends on it time out.
func (h *Hub) Unsubscribe(sessionID string, client chan Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.sessions[sessionID]
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.sessions, sessionID)
	}
	log.Debug().Str("module", "sse").Str("session", sessionID).Int("clients", len(clients)).Msg("client removed")
}

// ClientCount returns the number of live clients of a session
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) snapshot(sessionID string) map[chan Message]string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return maps.Clone(h.sessions[sessionID])
}

// Broadcast sends the same message to every client of a session
func (h *Hub) Broadcast(sessionID, event string, data []byte) {
	h.BroadcastPersonalized(sessionID, event, func(string) ([]byte, error) { return data, nil })
}

// BroadcastPersonalized renders and sends a message per client.
// Clients whose render fails are skipped, slow ones are dropped after the timeout.
func (h *Hub) BroadcastPersonalized(sessionID, event string, render func(userID string) ([]byte, error)) {
	// Send messages WITHOUT holding the lock
	clients := h.snapshot(sessionID)
	sent := 0
	for client, userID := range clients {
		data, err := render(userID)
		if err != nil {
			log.Error().Err(err).Str("module", "sse").Str("session", sessionID).Str("user", userID).Msg("render failed")
			continue
		}
		select {
		case client <- Message{Event: event, Data: data}:
			sent++
		case <-time.After(h.timeout):
			log.Debug().Str("module", "sse").Str("session", sessionID).Str("user", userID).Msg("timeout sending to client")
		}
	}
	log.Debug().Str("module", "sse").Str("session", sessionID).Str("event", event).
		Msgf("sent to %d/%d clients", sent, len(clients))
}
