// Package main provides the calibration CLI: fitting a calibration model
// from historical out-of-fold predictions and applying one to a slate.
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron/internal/calibration"
	"github.com/yourusername/gridiron/internal/config"
	"github.com/yourusername/gridiron/internal/dataset"
	"github.com/yourusername/gridiron/internal/logger"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	appLogger  *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	fitCmd.Flags().StringVar(&fitInput, "input", "", "Historical predictions CSV with labels (required)")
	fitCmd.Flags().StringVar(&fitArtifact, "artifact", "", "Output path for calibration.json (defaults to config)")
	fitCmd.Flags().StringVar(&fitMeta, "meta", "", "Output path for calibrator_meta.json (defaults to config)")
	_ = fitCmd.MarkFlagRequired("input")

	applyCmd.Flags().StringVar(&applyInput, "input", "", "Predictions CSV to calibrate (required)")
	applyCmd.Flags().StringVar(&applyOutput, "output", "", "Output CSV path (required)")
	applyCmd.Flags().StringVar(&applyArtifact, "artifact", "", "Calibration artifact to apply (defaults to config)")
	_ = applyCmd.MarkFlagRequired("input")
	_ = applyCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(applyCmd)
}

var rootCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Fit and apply win probability calibration models",
	Long:  `Fits Platt or isotonic calibration from historical predictions and applies a fitted model to slate output.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLogger = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
}

var (
	fitInput    string
	fitArtifact string
	fitMeta     string
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a calibration model from historical predictions",
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, columns, err := dataset.LoadCalibrationSamples(fitInput)
		if err != nil {
			return fmt.Errorf("failed to load calibration samples: %w", err)
		}

		fitterCfg := calibration.FitterConfig{
			FlatSlopeThreshold: cfg.Calibration.FlatSlopeThreshold,
			FlatRangeThreshold: cfg.Calibration.FlatRangeThreshold,
			MinSampleSize:      cfg.Calibration.MinSampleSize,
			Epsilon:            cfg.Calibration.Epsilon,
		}
		fitter := calibration.NewFitter(fitterCfg, appLogger)
		model, meta, err := fitter.Fit(samples)
		if err != nil {
			return fmt.Errorf("calibration fit failed: %w", err)
		}

		artifactPath := fitArtifact
		if artifactPath == "" {
			artifactPath = cfg.Calibration.ArtifactPath
		}
		metaPath := fitMeta
		if metaPath == "" {
			metaPath = cfg.Calibration.MetaPath
		}

		if err := calibration.SaveModel(artifactPath, model); err != nil {
			return fmt.Errorf("failed to save calibration artifact: %w", err)
		}
		fullMeta := struct {
			calibration.Meta
			Columns dataset.CalibrationColumns `json:"columns"`
		}{Meta: meta, Columns: columns}
		if err := calibration.SaveMeta(metaPath, fullMeta); err != nil {
			return fmt.Errorf("failed to save calibration metadata: %w", err)
		}

		appLogger.WithFields(logrus.Fields{
			"method":      meta.Method,
			"sample_size": meta.SampleSize,
			"unstable":    meta.Unstable,
			"guardrail":   meta.GuardrailTriggered,
			"artifact":    artifactPath,
		}).Info("Calibration model fitted")
		return nil
	},
}

var (
	applyInput    string
	applyOutput   string
	applyArtifact string
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a fitted calibration model to a predictions CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		artifactPath := applyArtifact
		if artifactPath == "" {
			artifactPath = cfg.Calibration.ArtifactPath
		}
		model, err := calibration.LoadModel(artifactPath)
		if err != nil {
			return fmt.Errorf("failed to load calibration artifact: %w", err)
		}
		applier, err := calibration.NewApplier(model, cfg.Calibration.Epsilon)
		if err != nil {
			return fmt.Errorf("invalid calibration model: %w", err)
		}

		count, err := calibratePredictionsFile(applyInput, applyOutput, applier)
		if err != nil {
			return err
		}
		appLogger.WithFields(logrus.Fields{
			"rows":   count,
			"method": model.Method,
			"output": applyOutput,
		}).Info("Calibration applied")
		return nil
	},
}

// calibratePredictionsFile rewrites a predictions CSV with a win_prob_home_cal
// column appended. An existing win_prob_home_cal column is replaced.
func calibratePredictionsFile(inputPath, outputPath string, applier *calibration.Applier) (int, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open predictions file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read predictions file: %w", err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("predictions file %s is empty", inputPath)
	}

	header := records[0]
	probIdx := -1
	calIdx := -1
	for i, name := range header {
		switch name {
		case "win_prob_home":
			probIdx = i
		case "win_prob_home_cal":
			calIdx = i
		}
	}
	if probIdx < 0 {
		return 0, fmt.Errorf("predictions file %s has no win_prob_home column", inputPath)
	}
	if calIdx < 0 {
		header = append(header, "win_prob_home_cal")
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	count := 0
	for _, row := range records[1:] {
		p, err := strconv.ParseFloat(row[probIdx], 64)
		if err != nil {
			return 0, fmt.Errorf("row %d: invalid win_prob_home %q: %w", count+1, row[probIdx], err)
		}
		cal, err := applier.Apply(p)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", count+1, err)
		}
		value := strconv.FormatFloat(cal, 'f', 4, 64)
		if calIdx >= 0 {
			row[calIdx] = value
		} else {
			row = append(row, value)
		}
		if err := w.Write(row); err != nil {
			return 0, fmt.Errorf("failed to write row: %w", err)
		}
		count++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush output: %w", err)
	}
	return count, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
