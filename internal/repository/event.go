package repository

import (
	"context"
	"fmt"

	"community-events-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// GetAll retrieves every event row. The admin and public clients filter
// and sort on their side, so no pagination is applied here.
func (r *EventRepository) GetAll(ctx context.Context) ([]*models.Event, error) {
	query := `
		SELECT id, name, description, location, date, start_time, end_time, created_at
		FROM events
		ORDER BY date, start_time
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID, &event.Name, &event.Description, &event.Location,
			&event.Date, &event.StartTime, &event.EndTime, &event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := `
		SELECT id, name, description, location, date, start_time, end_time, created_at
		FROM events
		WHERE id = $1
	`
	var event models.Event
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID, &event.Name, &event.Description, &event.Location,
		&event.Date, &event.StartTime, &event.EndTime, &event.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("event not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, name, description, location, date, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		event.ID, event.Name, event.Description, event.Location,
		event.Date, event.StartTime, event.EndTime, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// Update updates an existing event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET name = $1, description = $2, location = $3, date = $4, start_time = $5, end_time = $6
		WHERE id = $7
	`
	result, err := r.db.Exec(ctx, query,
		event.Name, event.Description, event.Location,
		event.Date, event.StartTime, event.EndTime, event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("event not found")
	}
	return nil
}

// Delete deletes an event
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("event not found")
	}
	return nil
}
