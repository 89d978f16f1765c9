package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// UpdateMessage is pushed to connected dashboards when events or media change
type UpdateMessage struct {
	Type      string `json:"type"`
	EventID   string `json:"event_id,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
	Category  string `json:"category,omitempty"`
	URL       string `json:"url,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Broadcaster is the hub surface the services need
type Broadcaster interface {
	Broadcast(msg UpdateMessage)
}

// Hub manages the WebSocket connections of signed-in dashboards
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
}

// NewHub creates a new hub
func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*websocket.Conn),
	}
}

// Register registers a connection for a session. An existing connection
// for the same session is replaced.
func (h *Hub) Register(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.connections[sessionID]; ok {
		existing.Close()
	}
	h.connections[sessionID] = conn

	log.Info().Str("session_id", sessionID).Msg("Dashboard connection registered")
}

// Unregister removes a connection
func (h *Hub) Unregister(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.connections[sessionID]; ok {
		conn.Close()
		delete(h.connections, sessionID)
		log.Info().Str("session_id", sessionID).Msg("Dashboard connection unregistered")
	}
}

// Broadcast sends a message to every connected dashboard. Connections
// that fail to write are dropped.
func (h *Hub) Broadcast(msg UpdateMessage) {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal update message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sessionID, conn := range h.connections {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("Dropping dead dashboard connection")
			conn.Close()
			delete(h.connections, sessionID)
		}
	}
}

// Connected returns the number of live connections
func (h *Hub) Connected() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}
