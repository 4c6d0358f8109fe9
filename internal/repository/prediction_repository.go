package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron/internal/database"
	"github.com/yourusername/gridiron/internal/models"
)

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// InsertBatch stores one slate's predictions using a bulk COPY
func (r *PostgresPredictionRepository) InsertBatch(ctx context.Context, batchID uuid.UUID, runAt time.Time, preds []models.Prediction) error {
	if len(preds) == 0 {
		return nil
	}

	columns := []string{
		"batch_id", "run_at", "home_team", "away_team", "vegas_line", "vegas_total",
		"sigma", "win_prob_home", "cover_prob_home", "ou_prob_over",
		"kickoff_utc", "neutral_site",
	}

	rows := make([][]interface{}, len(preds))
	for i, p := range preds {
		rows[i] = []interface{}{
			batchID, runAt, p.HomeTeam, p.AwayTeam, p.VegasLine, nullableFloat(p.VegasTotal),
			p.Sigma, p.WinProbHome, p.CoverProbHome, nullableFloat(p.OverProb),
			p.Kickoff, p.NeutralSite,
		}
	}

	count, err := r.db.GetPool().CopyFrom(ctx, pgx.Identifier{"predictions"}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert predictions: %w", err)
	}
	if count != int64(len(preds)) {
		return fmt.Errorf("inserted %d prediction rows, expected %d", count, len(preds))
	}
	return nil
}

// nullableFloat maps the in-memory NaN sentinel to SQL NULL
func nullableFloat(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
