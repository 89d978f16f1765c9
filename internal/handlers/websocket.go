package handlers

import (
	"net/http"

	"community-events-backend/internal/middleware"
	"community-events-backend/internal/services"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler upgrades dashboard connections and feeds the update hub
type WebSocketHandler struct {
	hub       *services.Hub
	validator middleware.SessionValidator
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.Hub, validator middleware.SessionValidator) *WebSocketHandler {
	return &WebSocketHandler{
		hub:       hub,
		validator: validator,
	}
}

// HandleWebSocket handles GET /ws. The session token arrives as a query
// parameter because browsers cannot set headers on WebSocket upgrades.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondBadRequest(w, "token required")
		return
	}

	claims, err := h.validator.ValidateSession(token)
	if err != nil {
		respond(w, http.StatusUnauthorized, map[string]interface{}{
			"error": errorBody{Kind: KindUnauthorized, Detail: "invalid token"},
		})
		return
	}
	if !claims.Approved {
		respond(w, http.StatusForbidden, map[string]interface{}{
			"error": errorBody{Kind: KindForbidden, Detail: "account not approved"},
		})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	sessionID := uuid.New().String()
	h.hub.Register(sessionID, conn)
	defer h.hub.Unregister(sessionID)

	log.Info().Str("email", claims.Email).Str("session_id", sessionID).Msg("Dashboard connected")

	// Drain the connection; the hub only pushes, clients only listen.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
