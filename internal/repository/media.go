package repository

import (
	"context"
	"fmt"

	"community-events-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Media categories. Each category keeps its own link table; image rows
// are shared.
const (
	CategoryEvent   = "event"
	CategoryProgram = "program"
)

func linkTable(category string) (string, error) {
	switch category {
	case CategoryEvent:
		return "event_images", nil
	case CategoryProgram:
		return "program_images", nil
	}
	return "", fmt.Errorf("unknown media category %q", category)
}

// MediaRepository handles database operations for images and their link rows
type MediaRepository struct {
	db *pgxpool.Pool
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *pgxpool.Pool) *MediaRepository {
	return &MediaRepository{db: db}
}

// CreateImage creates a new image row
func (r *MediaRepository) CreateImage(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO images (id, url, s3_key)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, image.ID, image.URL, image.S3Key)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

// DeleteImage deletes an image row by ID
func (r *MediaRepository) DeleteImage(ctx context.Context, id string) error {
	query := `DELETE FROM images WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// CreateLink creates a link row binding an image to its parent entity
func (r *MediaRepository) CreateLink(ctx context.Context, category string, link *models.EventImage) error {
	table, err := linkTable(category)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, event_id, image_id)
		VALUES ($1, $2, $3)
	`, table)
	_, err = r.db.Exec(ctx, query, link.ID, link.EventID, link.ImageID)
	if err != nil {
		return fmt.Errorf("failed to create link row: %w", err)
	}
	return nil
}

// URLsByParentID retrieves the media URLs linked to one parent entity
func (r *MediaRepository) URLsByParentID(ctx context.Context, category, parentID string) ([]string, error) {
	table, err := linkTable(category)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT i.url
		FROM images i
		JOIN %s l ON l.image_id = i.id
		WHERE l.event_id = $1
	`, table)
	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get media urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan media url: %w", err)
		}
		urls = append(urls, url)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media urls: %w", err)
	}

	return urls, nil
}

// DeleteByURL removes the link rows and image rows matching a URL.
// Returns the URLs actually removed from the database.
func (r *MediaRepository) DeleteByURL(ctx context.Context, category, url string) ([]string, error) {
	table, err := linkTable(category)
	if err != nil {
		return nil, err
	}

	linkQuery := fmt.Sprintf(`
		DELETE FROM %s
		WHERE image_id IN (SELECT id FROM images WHERE url = $1)
	`, table)
	if _, err := r.db.Exec(ctx, linkQuery, url); err != nil {
		return nil, fmt.Errorf("failed to delete link rows: %w", err)
	}

	query := `DELETE FROM images WHERE url = $1 RETURNING url`
	rows, err := r.db.Query(ctx, query, url)
	if err != nil {
		return nil, fmt.Errorf("failed to delete image rows: %w", err)
	}
	defer rows.Close()

	var removed []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan removed url: %w", err)
		}
		removed = append(removed, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating removed urls: %w", err)
	}

	return removed, nil
}

// DeleteLinksByParentID removes all link rows for one parent entity
func (r *MediaRepository) DeleteLinksByParentID(ctx context.Context, category, parentID string) error {
	table, err := linkTable(category)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE event_id = $1`, table)
	if _, err := r.db.Exec(ctx, query, parentID); err != nil {
		return fmt.Errorf("failed to delete link rows: %w", err)
	}
	return nil
}
