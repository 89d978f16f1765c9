package repository

import (
	"context"
	"fmt"

	"community-events-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BoardRepository handles database operations for board member profiles
type BoardRepository struct {
	db *pgxpool.Pool
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(db *pgxpool.Pool) *BoardRepository {
	return &BoardRepository{db: db}
}

// GetAll retrieves every board member profile ordered by display position
func (r *BoardRepository) GetAll(ctx context.Context) ([]*models.BoardProfile, error) {
	query := `
		SELECT id, name, title, bio, photo_url, position
		FROM board_member_website_profiles
		ORDER BY position
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get board profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.BoardProfile
	for rows.Next() {
		var profile models.BoardProfile
		err := rows.Scan(
			&profile.ID, &profile.Name, &profile.Title,
			&profile.Bio, &profile.PhotoURL, &profile.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board profile: %w", err)
		}
		profiles = append(profiles, &profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating board profiles: %w", err)
	}

	return profiles, nil
}
