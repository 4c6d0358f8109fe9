package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/gridiron/internal/database"
	"github.com/yourusername/gridiron/internal/models"
)

// PostgresRatingRepository implements RatingRepository for PostgreSQL
type PostgresRatingRepository struct {
	db *database.DB
}

// NewPostgresRatingRepository creates a new rating repository
func NewPostgresRatingRepository(db *database.DB) RatingRepository {
	return &PostgresRatingRepository{db: db}
}

// ListLatest returns the most recent rating row per team
func (r *PostgresRatingRepository) ListLatest(ctx context.Context) ([]models.TeamRating, error) {
	query := `
		SELECT DISTINCT ON (team_code) team_code, rating, uncertainty, hfa
		FROM team_ratings
		ORDER BY team_code, updated_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query team ratings: %w", err)
	}
	defer rows.Close()

	var ratings []models.TeamRating
	for rows.Next() {
		var tr models.TeamRating
		if err := rows.Scan(&tr.TeamCode, &tr.Rating, &tr.Uncertainty, &tr.HFA); err != nil {
			return nil, fmt.Errorf("failed to scan team rating: %w", err)
		}
		if err := tr.Validate(); err != nil {
			return nil, fmt.Errorf("team_ratings table: %w", err)
		}
		ratings = append(ratings, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team ratings: %w", err)
	}
	if len(ratings) == 0 {
		return nil, fmt.Errorf("team_ratings table is empty: %w", models.ErrNotFound)
	}
	return ratings, nil
}
