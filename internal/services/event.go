package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"community-events-backend/internal/models"
	"community-events-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// EventStore is the slice of the event repository the service needs
type EventStore interface {
	GetAll(ctx context.Context) ([]*models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

// EventLinkStore is the slice of the media repository the service needs
type EventLinkStore interface {
	URLsByParentID(ctx context.Context, category, parentID string) ([]string, error)
	DeleteLinksByParentID(ctx context.Context, category, parentID string) error
}

// EventService handles event-related business logic
type EventService struct {
	events EventStore
	links  EventLinkStore
	hub    Broadcaster
}

// NewEventService creates a new event service
func NewEventService(events EventStore, links EventLinkStore, hub Broadcaster) *EventService {
	return &EventService{
		events: events,
		links:  links,
		hub:    hub,
	}
}

// FetchEvents returns every event row. Filtering and sorting are done by
// the clients, so the full set is always returned.
func (s *EventService) FetchEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := s.events.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	if events == nil {
		events = []*models.Event{}
	}
	return events, nil
}

// RetrieveMedia maps each requested event ID to its media URLs. A lookup
// failure for one ID substitutes an empty list for that ID instead of
// failing the whole batch.
func (s *EventService) RetrieveMedia(ctx context.Context, ids []string) (map[string][]string, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: id_list must not be empty", ErrBadRequest)
	}

	result := make(map[string][]string, len(ids))
	for _, id := range ids {
		urls, err := s.links.URLsByParentID(ctx, repository.CategoryEvent, id)
		if err != nil {
			log.Error().Err(err).Str("event_id", id).Msg("Failed to retrieve media for event")
			result[id] = []string{}
			continue
		}
		if urls == nil {
			urls = []string{}
		}
		result[id] = urls
	}

	return result, nil
}

func validateEvent(event *models.Event) error {
	if event.Name == "" {
		return fmt.Errorf("%w: name is required", ErrBadRequest)
	}
	if event.Location == "" {
		return fmt.Errorf("%w: location is required", ErrBadRequest)
	}
	if event.Description == "" {
		return fmt.Errorf("%w: description is required", ErrBadRequest)
	}
	return nil
}

// CreateEvent creates a new event
func (s *EventService) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	event.ID = uuid.New().String()
	event.CreatedAt = time.Now()

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.broadcast(UpdateMessage{Type: "event_created", EventID: event.ID})
	return event, nil
}

// UpdateEvent updates an existing event
func (s *EventService) UpdateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		return fmt.Errorf("%w: id is required", ErrBadRequest)
	}
	if err := validateEvent(event); err != nil {
		return err
	}

	if _, err := s.events.GetByID(ctx, event.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: event %s", ErrNotFound, event.ID)
		}
		return fmt.Errorf("failed to look up event: %w", err)
	}

	if err := s.events.Update(ctx, event); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	s.broadcast(UpdateMessage{Type: "event_updated", EventID: event.ID})
	return nil
}

// DeleteEvent deletes an event and its media link rows
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrBadRequest)
	}

	if _, err := s.events.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: event %s", ErrNotFound, id)
		}
		return fmt.Errorf("failed to look up event: %w", err)
	}

	if err := s.links.DeleteLinksByParentID(ctx, repository.CategoryEvent, id); err != nil {
		return fmt.Errorf("failed to delete event links: %w", err)
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.broadcast(UpdateMessage{Type: "event_deleted", EventID: id})
	return nil
}

func (s *EventService) broadcast(msg UpdateMessage) {
	if s.hub != nil {
		s.hub.Broadcast(msg)
	}
}
