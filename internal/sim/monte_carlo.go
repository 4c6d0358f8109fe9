package sim

import (
	"math"
	"math/rand"
)

// Outcome holds the reduced probabilities from one game's sample draws.
// OverProb is NaN when the market posted no total.
type Outcome struct {
	WinProbHome   float64
	CoverProbHome float64
	OverProb      float64
}

// Engine draws from the modeled margin and total distributions and reduces
// the samples to win/cover/over probabilities. Margin and total are treated
// as independent; that is a stated simplification kept as the default for
// comparability with historical baselines.
type Engine struct {
	params Params
}

// NewEngine creates a Monte Carlo engine with the given parameters
func NewEngine(params Params) *Engine {
	return &Engine{params: params}
}

// Simulate runs one game. The seed is explicit: there is no hidden global
// generator, so callers can parallelize games freely.
//
//	win:   P(margin > 0)
//	cover: P(margin + spread_home > 0)
//	over:  P(total > market_total), NaN without a market total
func (e *Engine) Simulate(muMargin, muTotal, spreadHome, marketTotal float64, seed int64) Outcome {
	rng := rand.New(rand.NewSource(seed))
	n := e.params.Samples

	winCount := 0
	coverCount := 0
	overCount := 0
	hasTotal := !math.IsNaN(marketTotal)

	for i := 0; i < n; i++ {
		margin := muMargin + e.params.SigmaMargin*rng.NormFloat64()
		if margin > 0 {
			winCount++
		}
		if margin+spreadHome > 0 {
			coverCount++
		}
		if hasTotal {
			total := muTotal + e.params.SigmaTotal*rng.NormFloat64()
			if total > marketTotal {
				overCount++
			}
		}
	}

	out := Outcome{
		WinProbHome:   float64(winCount) / float64(n),
		CoverProbHome: float64(coverCount) / float64(n),
		OverProb:      math.NaN(),
	}
	if hasTotal {
		out.OverProb = float64(overCount) / float64(n)
	}
	return out
}
