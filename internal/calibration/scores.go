package calibration

import (
	"math"

	"github.com/yourusername/gridiron/internal/mathx"
)

// Score pairs the two accuracy metrics used for candidate selection
type Score struct {
	LogLoss float64 `json:"logloss"`
	Brier   float64 `json:"brier"`
}

// LogLoss is the mean negative log-likelihood of the outcomes under the
// predicted probabilities (clipped away from 0 and 1). Lower is better.
func LogLoss(outcomes []int, probs []float64) float64 {
	if len(probs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for i, p := range probs {
		p = mathx.ClipProb(p, mathx.ProbEpsilon)
		if outcomes[i] == 1 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}
	return sum / float64(len(probs))
}

// Brier is the mean squared error between predicted probability and binary
// outcome. Lower is better.
func Brier(outcomes []int, probs []float64) float64 {
	if len(probs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for i, p := range probs {
		d := p - float64(outcomes[i])
		sum += d * d
	}
	return sum / float64(len(probs))
}

func scoreOf(outcomes []int, probs []float64) Score {
	return Score{LogLoss: LogLoss(outcomes, probs), Brier: Brier(outcomes, probs)}
}
