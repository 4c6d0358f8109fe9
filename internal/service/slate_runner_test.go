package service

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yourusername/gridiron/internal/calibration"
	"github.com/yourusername/gridiron/internal/models"
	"github.com/yourusername/gridiron/internal/sim"
)

func runnerParams() sim.Params {
	return sim.Params{
		BlendWeightModel: 0.60,
		SigmaMargin:      13.5,
		SigmaTotal:       9.5,
		Samples:          2000,
		Workers:          2,
		BaselineTotal:    44.0,
		MinBaselineTotal: 35.0,
		TotalMarginSlope: 0.2,
		MarketTotalBlend: 0.7,
	}
}

func runnerInputs() SlateInputs {
	kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	return SlateInputs{
		Ratings: []models.TeamRating{
			{TeamCode: "KC", Rating: 8.0, Uncertainty: 0.5, HFA: 2.0},
			{TeamCode: "DEN", Rating: -2.0, Uncertainty: 0.5, HFA: 2.5},
		},
		Games: []models.GameLine{
			{HomeTeam: "KC", AwayTeam: "DEN", SpreadHome: -7.0, Total: 45.5, Kickoff: kickoff, SpreadKnown: true},
		},
	}
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse %s: %v", path, err)
	}
	return records
}

func TestSlateRunnerWritesOutput(t *testing.T) {
	outDir := t.TempDir()
	runner := NewSlateRunner(runnerParams(), calibration.NewStore(time.Minute), nil, quietLogger())

	preds, cards, err := runner.Run(context.Background(), runnerInputs(), outDir, "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(preds) != 1 || len(cards) != 1 {
		t.Fatalf("expected one game, got %d preds / %d cards", len(preds), len(cards))
	}
	if preds[0].Calibrated {
		t.Fatal("no calibration artifact was given")
	}

	predRows := readCSVFile(t, filepath.Join(outDir, "predictions.csv"))
	if len(predRows) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(predRows))
	}
	if predRows[0][0] != "home_team" || predRows[1][0] != "KC" {
		t.Fatalf("unexpected predictions content: %v", predRows)
	}
	for _, col := range predRows[0] {
		if col == "win_prob_home_cal" {
			t.Fatal("uncalibrated output must not carry the calibrated column")
		}
	}

	cardRows := readCSVFile(t, filepath.Join(outDir, "game_cards.csv"))
	if len(cardRows) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(cardRows))
	}
	if cardRows[1][0] != "DEN@KC_20250907T1700Z" {
		t.Fatalf("unexpected game id in cards: %s", cardRows[1][0])
	}
}

func TestSlateRunnerAppliesCalibration(t *testing.T) {
	outDir := t.TempDir()
	artifact := filepath.Join(outDir, "calibration.json")
	model := calibration.Model{
		Method: calibration.MethodPlatt,
		Platt:  calibration.Platt{A: 0.5, B: 0.0, Feature: calibration.FeatureLogit},
	}
	if err := calibration.SaveModel(artifact, model); err != nil {
		t.Fatalf("SaveModel failed: %v", err)
	}

	runner := NewSlateRunner(runnerParams(), calibration.NewStore(time.Minute), nil, quietLogger())
	preds, _, err := runner.Run(context.Background(), runnerInputs(), outDir, artifact)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	p := preds[0]
	if !p.Calibrated {
		t.Fatal("prediction not marked calibrated")
	}
	if p.WinProbHomeCal <= 0 || p.WinProbHomeCal >= 1 {
		t.Fatalf("calibrated prob out of (0,1): %v", p.WinProbHomeCal)
	}
	// A=0.5 shrinks toward 0.5, and the raw prob is well above it
	if p.WinProbHomeCal >= p.WinProbHome {
		t.Fatalf("shrinking calibration should pull %v below %v", p.WinProbHomeCal, p.WinProbHome)
	}

	predRows := readCSVFile(t, filepath.Join(outDir, "predictions.csv"))
	last := len(predRows[0]) - 1
	if predRows[0][last] != "win_prob_home_cal" {
		t.Fatalf("calibrated column missing from header: %v", predRows[0])
	}
}

func TestSlateRunnerMissingArtifact(t *testing.T) {
	runner := NewSlateRunner(runnerParams(), calibration.NewStore(time.Minute), nil, quietLogger())

	_, _, err := runner.Run(context.Background(), runnerInputs(), "", filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("a missing calibration artifact must fail the run")
	}
}

func TestSlateRunnerDuplicateRatings(t *testing.T) {
	inputs := runnerInputs()
	inputs.Ratings = append(inputs.Ratings, inputs.Ratings[0])
	runner := NewSlateRunner(runnerParams(), calibration.NewStore(time.Minute), nil, quietLogger())

	_, _, err := runner.Run(context.Background(), inputs, "", "")
	if err == nil {
		t.Fatal("duplicate ratings must fail the run")
	}
}

func TestWritePredictionsCSVNaNBecomesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.csv")
	preds := []models.Prediction{{
		HomeTeam:      "KC",
		AwayTeam:      "DEN",
		VegasLine:     -7.0,
		VegasTotal:    math.NaN(),
		Sigma:         13.5,
		WinProbHome:   0.7,
		CoverProbHome: 0.6,
		OverProb:      math.NaN(),
	}}

	if err := WritePredictionsCSV(path, preds); err != nil {
		t.Fatalf("WritePredictionsCSV failed: %v", err)
	}

	rows := readCSVFile(t, path)
	header, row := rows[0], rows[1]
	byName := make(map[string]string, len(header))
	for i, h := range header {
		byName[h] = row[i]
	}
	if byName["vegas_total"] != "" || byName["ou_prob_over"] != "" {
		t.Fatalf("NaN cells must be empty, got %q / %q", byName["vegas_total"], byName["ou_prob_over"])
	}
	if byName["win_prob_home"] != "0.7" {
		t.Fatalf("unexpected win prob cell: %q", byName["win_prob_home"])
	}
}
