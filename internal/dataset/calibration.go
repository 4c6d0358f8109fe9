package dataset

import (
	"fmt"
	"math"

	"github.com/yourusername/gridiron/internal/calibration"
	"github.com/yourusername/gridiron/internal/mathx"
	"github.com/yourusername/gridiron/internal/models"
)

// Column alias lists for historical out-of-fold prediction files. These are
// a backward-compatibility adapter at the boundary: the statistical core
// receives explicit samples, never column names. First match wins.
var (
	labelColumns = []string{"home_win", "label", "y", "target", "outcome", "home_win_obs", "y_home"}
	probColumns  = []string{"home_winprob", "prob", "pred_prob", "p", "proba", "prob1", "home_prob", "prediction", "p_home"}
	logitColumns = []string{"logit", "margin", "score", "home_logit", "log_odds"}
)

// CalibrationColumns records which columns were selected, for the audit
// metadata persisted next to the calibration artifact.
type CalibrationColumns struct {
	Label string `json:"label"`
	Prob  string `json:"prob,omitempty"`
	Logit string `json:"logit,omitempty"`
}

// LoadCalibrationSamples reads a historical predictions file and resolves
// label and probability (or logit) columns from the alias lists. A file with
// no label column, or with neither a valid probability column nor a logit
// column, is a fatal error; the loader never guesses by position.
func LoadCalibrationSamples(path string) ([]calibration.Sample, CalibrationColumns, error) {
	t, err := readTable(path, "oof_predictions")
	if err != nil {
		return nil, CalibrationColumns{}, err
	}

	var cols CalibrationColumns
	for _, c := range labelColumns {
		if t.hasColumn(c) {
			cols.Label = c
			break
		}
	}
	if cols.Label == "" {
		return nil, cols, fmt.Errorf("oof_predictions: %w: tried %v (found: %s)",
			models.ErrNoLabelColumn, labelColumns, t.columnList())
	}

	// probability column must actually hold values in [0, 1]
	for _, c := range probColumns {
		if t.hasColumn(c) && columnInUnitRange(t, c) {
			cols.Prob = c
			break
		}
	}
	if cols.Prob == "" {
		for _, c := range logitColumns {
			if t.hasColumn(c) {
				cols.Logit = c
				break
			}
		}
	}
	if cols.Prob == "" && cols.Logit == "" {
		return nil, cols, fmt.Errorf("oof_predictions: %w: tried prob %v and logit %v",
			models.ErrNoProbabilityColumn, probColumns, logitColumns)
	}

	samples := make([]calibration.Sample, 0, len(t.rows))
	for _, row := range t.rows {
		label := t.floatCell(row, cols.Label)
		if math.IsNaN(label) {
			continue
		}
		var p float64
		if cols.Prob != "" {
			p = t.floatCell(row, cols.Prob)
			if math.IsNaN(p) {
				continue
			}
			p = mathx.ClipProb(p, mathx.ProbEpsilon)
		} else {
			z := t.floatCell(row, cols.Logit)
			if math.IsNaN(z) {
				continue
			}
			p = mathx.Sigmoid(z)
		}
		outcome := 0
		if label >= 0.5 {
			outcome = 1
		}
		samples = append(samples, calibration.Sample{Prob: p, Outcome: outcome})
	}
	return samples, cols, nil
}

func columnInUnitRange(t *table, col string) bool {
	any := false
	for _, row := range t.rows {
		v := t.floatCell(row, col)
		if math.IsNaN(v) {
			continue
		}
		any = true
		if v < -0.01 || v > 1.01 {
			return false
		}
	}
	return any
}
