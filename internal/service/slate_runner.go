package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron/internal/calibration"
	"github.com/yourusername/gridiron/internal/injury"
	"github.com/yourusername/gridiron/internal/mathx"
	"github.com/yourusername/gridiron/internal/metrics"
	"github.com/yourusername/gridiron/internal/models"
	"github.com/yourusername/gridiron/internal/ratings"
	"github.com/yourusername/gridiron/internal/repository"
	"github.com/yourusername/gridiron/internal/sim"
)

// SlateInputs bundles the fully-materialized tables for one run
type SlateInputs struct {
	Ratings  []models.TeamRating
	Games    []models.GameLine
	Depth    []models.DepthEntry
	Injuries []models.InjuryRecord
}

// SlateRunner wires validation, blending, simulation, optional calibration,
// and optional persistence into one batch run.
type SlateRunner struct {
	params    sim.Params
	validator *SlateValidator
	calStore  *calibration.Store
	predRepo  repository.PredictionRepository
	logger    *logrus.Logger
}

// NewSlateRunner creates a slate runner. predRepo may be nil when no
// database is configured.
func NewSlateRunner(params sim.Params, calStore *calibration.Store, predRepo repository.PredictionRepository, logger *logrus.Logger) *SlateRunner {
	if logger == nil {
		logger = logrus.New()
	}
	return &SlateRunner{
		params:    params,
		validator: NewSlateValidator(logger),
		calStore:  calStore,
		predRepo:  predRepo,
		logger:    logger,
	}
}

// Run executes the full batch. calibrationPath is optional; when set, the
// artifact is loaded through the store and applied to the win probabilities.
func (r *SlateRunner) Run(ctx context.Context, inputs SlateInputs, outputDir, calibrationPath string) ([]models.Prediction, []models.GameCard, error) {
	store, err := ratings.NewStore(inputs.Ratings, r.logger)
	if err != nil {
		return nil, nil, err
	}
	metrics.RatedTeams.Set(float64(store.Len()))
	metrics.SlateGames.Set(float64(len(inputs.Games)))

	if err := r.validator.ValidateSlate(inputs.Games, store); err != nil {
		return nil, nil, err
	}

	adjuster := injury.NewAdjuster(inputs.Depth)
	blender := sim.NewBlender(store, adjuster, r.params)
	engine := sim.NewEngine(r.params)
	slate := sim.NewSlate(blender, engine, r.params, r.logger)

	preds, cards, err := slate.Run(inputs.Games, inputs.Injuries)
	if err != nil {
		return nil, nil, err
	}

	if calibrationPath != "" {
		if err := r.applyCalibration(preds, calibrationPath); err != nil {
			return nil, nil, err
		}
	}

	if outputDir != "" {
		if err := WritePredictionsCSV(filepath.Join(outputDir, "predictions.csv"), preds); err != nil {
			return nil, nil, err
		}
		if err := WriteGameCardsCSV(filepath.Join(outputDir, "game_cards.csv"), cards); err != nil {
			return nil, nil, err
		}
	}

	if r.predRepo != nil {
		batchID := uuid.New()
		if err := r.predRepo.InsertBatch(ctx, batchID, time.Now().UTC(), preds); err != nil {
			return nil, nil, fmt.Errorf("failed to persist predictions: %w", err)
		}
		r.logger.WithField("batch_id", batchID).Info("Predictions persisted")
	}

	return preds, cards, nil
}

// applyCalibration maps raw win probabilities through the stored artifact.
// The artifact is read-only here; a corrupted artifact fails the run rather
// than passing probabilities through unmodified.
func (r *SlateRunner) applyCalibration(preds []models.Prediction, path string) error {
	model, err := r.calStore.Load(path)
	if err != nil {
		return err
	}
	applier, err := calibration.NewApplier(model, mathx.ProbEpsilon)
	if err != nil {
		return err
	}
	for i := range preds {
		cal, err := applier.Apply(preds[i].WinProbHome)
		if err != nil {
			return err
		}
		preds[i].WinProbHomeCal = cal
		preds[i].Calibrated = true
	}
	r.logger.WithFields(logrus.Fields{
		"method": model.Method,
		"games":  len(preds),
	}).Info("Applied calibration to win probabilities")
	return nil
}
