// Package repository provides Postgres persistence for ratings and
// prediction batches.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron/internal/models"
)

// RatingRepository loads the current team ratings snapshot
type RatingRepository interface {
	// ListLatest returns the most recent rating per team
	ListLatest(ctx context.Context) ([]models.TeamRating, error)
}

// PredictionRepository persists simulation output batches
type PredictionRepository interface {
	// InsertBatch stores one slate's predictions under a batch ID
	InsertBatch(ctx context.Context, batchID uuid.UUID, runAt time.Time, preds []models.Prediction) error
}
