package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"community-events-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// EventService is the event surface the handler needs
type EventService interface {
	FetchEvents(ctx context.Context) ([]*models.Event, error)
	RetrieveMedia(ctx context.Context, ids []string) (map[string][]string, error)
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	events EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(events EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Fetch handles GET /api/events/fetch
func (h *EventHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.FetchEvents(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch events")
		respondError(w, err)
		return
	}
	respondData(w, events)
}

// RetrieveMediaRequest is the body of POST /api/events/retrieve/media
type RetrieveMediaRequest struct {
	IDList []string `json:"id_list"`
}

// RetrieveMedia handles POST /api/events/retrieve/media
func (h *EventHandler) RetrieveMedia(w http.ResponseWriter, r *http.Request) {
	var req RetrieveMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	media, err := h.events.RetrieveMedia(r.Context(), req.IDList)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, media)
}

// Create handles POST /api/events/create
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	created, err := h.events.CreateEvent(r.Context(), &event)
	if err != nil {
		respondError(w, err)
		return
	}

	log.Info().Str("event_id", created.ID).Str("name", created.Name).Msg("Event created")
	respondData(w, created)
}

// Update handles PUT /api/events/update
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	if err := h.events.UpdateEvent(r.Context(), &event); err != nil {
		respondError(w, err)
		return
	}

	log.Info().Str("event_id", event.ID).Msg("Event updated")
	respondData(w, &event)
}

// DeleteRequest is the body of DELETE /api/events/delete
type DeleteRequest struct {
	ID string `json:"id"`
}

// Delete handles DELETE /api/events/delete
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	if err := h.events.DeleteEvent(r.Context(), req.ID); err != nil {
		respondError(w, err)
		return
	}

	log.Info().Str("event_id", req.ID).Msg("Event deleted")
	respond(w, http.StatusOK, map[string]interface{}{"message": "event deleted"})
}
