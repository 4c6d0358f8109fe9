package service

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/yourusername/gridiron/internal/models"
)

// WritePredictionsCSV writes the strict predictions table. NaN values
// (missing market totals and their over probabilities) become empty cells.
func WritePredictionsCSV(path string, preds []models.Prediction) error {
	header := []string{
		"home_team", "away_team", "vegas_line", "vegas_total", "sigma",
		"win_prob_home", "cover_prob_home", "ou_prob_over", "kickoff_utc", "neutral_site",
	}
	calibrated := len(preds) > 0 && preds[0].Calibrated
	if calibrated {
		header = append(header, "win_prob_home_cal")
	}

	rows := make([][]string, 0, len(preds))
	for _, p := range preds {
		row := []string{
			p.HomeTeam,
			p.AwayTeam,
			formatFloat(p.VegasLine),
			formatFloat(p.VegasTotal),
			formatFloat(p.Sigma),
			formatFloat(p.WinProbHome),
			formatFloat(p.CoverProbHome),
			formatFloat(p.OverProb),
			formatTime(p.Kickoff),
			strconv.FormatBool(p.NeutralSite),
		}
		if calibrated {
			row = append(row, formatFloat(p.WinProbHomeCal))
		}
		rows = append(rows, row)
	}
	return writeCSV(path, header, rows)
}

// WriteGameCardsCSV writes the extended diagnostics table
func WriteGameCardsCSV(path string, cards []models.GameCard) error {
	header := []string{
		"game_id", "home_team", "away_team", "kickoff_utc", "neutral_site",
		"rating_home", "rating_away", "hfa_home", "inj_adj_home", "inj_adj_away",
		"vegas_line", "vegas_total", "modeled_spread_home", "modeled_total",
		"win_prob_home", "cover_prob_home", "ou_prob_over", "notes",
	}

	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{
			c.GameID,
			c.HomeTeam,
			c.AwayTeam,
			formatTime(c.Kickoff),
			strconv.FormatBool(c.NeutralSite),
			formatFloat(c.RatingHome),
			formatFloat(c.RatingAway),
			formatFloat(c.HFAHome),
			formatFloat(c.InjAdjHome),
			formatFloat(c.InjAdjAway),
			formatFloat(c.VegasLine),
			formatFloat(c.VegasTotal),
			formatFloat(c.ModeledSpreadHome),
			formatFloat(c.ModeledTotal),
			formatFloat(c.WinProbHome),
			formatFloat(c.CoverProbHome),
			formatFloat(c.OverProb),
			c.Notes,
		})
	}
	return writeCSV(path, header, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
