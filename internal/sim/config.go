package sim

import (
	"fmt"

	"github.com/yourusername/gridiron/internal/config"
)

// Params holds the numeric assumptions of one simulation run. Every value is
// explicit and overridable; nothing is learned online.
type Params struct {
	// BlendWeightModel is w in mu = w*model + (1-w)*market.
	BlendWeightModel float64
	// SigmaMargin and SigmaTotal are the normal standard deviations for the
	// point margin and game total draws.
	SigmaMargin float64
	SigmaTotal  float64
	// Samples is the Monte Carlo draw count per game.
	Samples int
	// Workers bounds the per-game simulation parallelism.
	Workers int
	// Total fallback shape used when the market posts no total.
	BaselineTotal    float64
	MinBaselineTotal float64
	TotalMarginSlope float64
	MarketTotalBlend float64
}

// FromConfig converts app config into simulation params
func FromConfig(cfg *config.SimulationConfig) (Params, error) {
	if cfg == nil {
		return Params{}, fmt.Errorf("simulation config is required")
	}
	p := Params{
		BlendWeightModel: cfg.BlendWeightModel,
		SigmaMargin:      cfg.SigmaMargin,
		SigmaTotal:       cfg.SigmaTotal,
		Samples:          cfg.Samples,
		Workers:          cfg.Workers,
		BaselineTotal:    cfg.BaselineTotal,
		MinBaselineTotal: cfg.MinBaselineTotal,
		TotalMarginSlope: cfg.TotalMarginSlope,
		MarketTotalBlend: cfg.MarketTotalBlend,
	}
	return p, p.Validate()
}

// Validate checks parameter sanity
func (p Params) Validate() error {
	if p.BlendWeightModel < 0 || p.BlendWeightModel > 1 {
		return fmt.Errorf("blend weight must be in [0, 1], got %.2f", p.BlendWeightModel)
	}
	if p.SigmaMargin <= 0 || p.SigmaTotal <= 0 {
		return fmt.Errorf("sigma margin and sigma total must be positive")
	}
	if p.Samples <= 0 {
		return fmt.Errorf("sample count must be positive")
	}
	if p.Workers <= 0 {
		return fmt.Errorf("worker count must be positive")
	}
	if p.MarketTotalBlend < 0 || p.MarketTotalBlend > 1 {
		return fmt.Errorf("market total blend must be in [0, 1], got %.2f", p.MarketTotalBlend)
	}
	return nil
}
