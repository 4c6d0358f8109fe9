package calibration

import (
	"fmt"

	"github.com/yourusername/gridiron/internal/mathx"
	"github.com/yourusername/gridiron/internal/models"
)

// Applier maps raw probabilities through a previously-fit calibration model.
// It never retrains; the model is a read-only artifact.
type Applier struct {
	model Model
	eps   float64
}

// NewApplier validates the model once and returns an applier. An unknown or
// malformed variant fails here rather than at apply time.
func NewApplier(model Model, eps float64) (*Applier, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	if eps <= 0 || eps >= 0.5 {
		eps = mathx.ProbEpsilon
	}
	return &Applier{model: model, eps: eps}, nil
}

// Model returns the underlying calibration model
func (a *Applier) Model() Model {
	return a.model
}

// Apply calibrates one probability. The result is always strictly inside
// (0, 1).
func (a *Applier) Apply(p float64) (float64, error) {
	switch a.model.Method {
	case MethodPlatt:
		pl := a.model.Platt
		var z float64
		if pl.Feature == FeatureProb {
			z = p
		} else {
			z = mathx.Logit(p)
		}
		return mathx.ClipProb(mathx.Sigmoid(pl.A*z+pl.B), a.eps), nil
	case MethodIsotonic:
		iso := a.model.Isotonic
		x := mathx.ClipProb(p, a.eps)
		return mathx.ClipProb(mathx.Interp(x, iso.X, iso.Y), a.eps), nil
	}
	// unreachable after NewApplier validation, kept as a hard stop for
	// artifacts mutated after construction
	return 0, fmt.Errorf("%w: %q", models.ErrUnknownCalibration, a.model.Method)
}

// ApplyBatch calibrates a batch of probabilities
func (a *Applier) ApplyBatch(probs []float64) ([]float64, error) {
	out := make([]float64, len(probs))
	for i, p := range probs {
		cal, err := a.Apply(p)
		if err != nil {
			return nil, err
		}
		out[i] = cal
	}
	return out, nil
}
