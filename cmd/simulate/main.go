// Package main provides the entry point for the weekly slate simulation.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron/internal/calibration"
	"github.com/yourusername/gridiron/internal/config"
	"github.com/yourusername/gridiron/internal/database"
	"github.com/yourusername/gridiron/internal/dataset"
	"github.com/yourusername/gridiron/internal/logger"
	"github.com/yourusername/gridiron/internal/metrics"
	"github.com/yourusername/gridiron/internal/models"
	"github.com/yourusername/gridiron/internal/repository"
	"github.com/yourusername/gridiron/internal/scheduler"
	"github.com/yourusername/gridiron/internal/service"
	"github.com/yourusername/gridiron/internal/sim"
)

func main() {
	var (
		configPath      = flag.String("config", "config/config.yaml", "Path to config file")
		ratingsPath     = flag.String("ratings", "", "Path to team ratings CSV (falls back to database when enabled)")
		linesPath       = flag.String("lines", "", "Path to game lines CSV (required)")
		depthPath       = flag.String("depth", "", "Path to depth chart CSV (optional)")
		injuriesPath    = flag.String("injuries", "", "Path to injuries CSV (optional)")
		outputDir       = flag.String("output", "./output", "Directory for predictions and game cards")
		calibrationPath = flag.String("calibration", "", "Path to calibration artifact to apply (optional)")
		persist         = flag.Bool("persist", false, "Persist predictions to the configured database")
		schedule        = flag.String("schedule", "", "Cron expression for recurring runs (empty runs once)")
	)
	flag.Parse()

	cfg := loadConfigWithSecrets(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)
	ctx := context.Background()

	if *linesPath == "" {
		log.Fatal("A game lines CSV is required (-lines)")
	}

	params, err := sim.FromConfig(&cfg.Simulation)
	if err != nil {
		log.Fatalf("Invalid simulation config: %v", err)
	}

	var db *database.DB
	var predRepo repository.PredictionRepository
	var ratingRepo repository.RatingRepository
	if cfg.Database.Enabled {
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		ratingRepo = repository.NewPostgresRatingRepository(db)
		if *persist {
			predRepo = repository.NewPostgresPredictionRepository(db)
		}
	} else if *persist {
		log.Fatal("Cannot persist predictions: database is not enabled in config")
	}

	calStore := calibration.NewStore(time.Duration(cfg.Calibration.CacheTTLSeconds) * time.Second)
	runner := service.NewSlateRunner(params, calStore, predRepo, log)

	job := func(ctx context.Context) error {
		runLog := logger.NewRunLogger(log, uuid.NewString())
		inputs, err := loadInputs(ctx, *ratingsPath, *linesPath, *depthPath, *injuriesPath, ratingRepo, log)
		if err != nil {
			return err
		}
		preds, _, err := runner.Run(ctx, inputs, *outputDir, *calibrationPath)
		if err != nil {
			return err
		}
		runLog.WithFields(logrus.Fields{
			"games":  len(preds),
			"output": *outputDir,
		}).Info("Slate simulation complete")
		return nil
	}

	if *schedule == "" {
		if err := job(ctx); err != nil {
			log.Fatalf("Slate simulation failed: %v", err)
		}
		return
	}

	runScheduled(cfg, log, *schedule, job)
}

func runScheduled(cfg *config.Config, log *logrus.Logger, cronExpr string, job scheduler.SlateJob) {
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle(cfg.Metrics.Path, metrics.Handler())
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			log.WithField("addr", addr).Info("Serving metrics")
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.WithError(err).Error("Metrics server stopped")
			}
		}()
	}

	sched := scheduler.NewScheduler(log)
	if err := sched.ScheduleSlateRun(cronExpr, job); err != nil {
		log.Fatalf("Failed to schedule slate run: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("Shutting down")
}

func loadConfigWithSecrets(path string) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			logrus.Fatal("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			logrus.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func loadInputs(ctx context.Context, ratingsPath, linesPath, depthPath, injuriesPath string, ratingRepo repository.RatingRepository, log *logrus.Logger) (service.SlateInputs, error) {
	var inputs service.SlateInputs
	var err error

	switch {
	case ratingsPath != "":
		inputs.Ratings, err = dataset.LoadRatings(ratingsPath)
	case ratingRepo != nil:
		inputs.Ratings, err = ratingRepo.ListLatest(ctx)
	default:
		return inputs, fmt.Errorf("no ratings source: pass -ratings or enable the database")
	}
	if err != nil {
		return inputs, err
	}

	inputs.Games, err = dataset.LoadGameLines(linesPath, log)
	if err != nil {
		return inputs, err
	}

	if depthPath != "" {
		inputs.Depth, err = dataset.LoadDepthChart(depthPath)
		if err != nil {
			return inputs, err
		}
	}
	if injuriesPath != "" {
		inputs.Injuries, err = dataset.LoadInjuries(injuriesPath, log)
		if err != nil {
			return inputs, err
		}
	} else {
		inputs.Injuries = []models.InjuryRecord{}
	}
	return inputs, nil
}
