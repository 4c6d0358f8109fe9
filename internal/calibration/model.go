// Package calibration fits and applies probability-correction models with
// guardrails against degenerate fits.
package calibration

import (
	"encoding/json"
	"fmt"

	"github.com/yourusername/gridiron/internal/models"
)

// Method tags the calibration model variant
type Method string

// Supported calibration methods
const (
	MethodPlatt    Method = "platt"
	MethodIsotonic Method = "isotonic"
)

// Feature selects the input transform for a Platt model
type Feature string

// Platt input features
const (
	FeatureLogit Feature = "logit"
	FeatureProb  Feature = "prob"
)

// Platt holds the parameters of a Platt-scaling fit:
// p_cal = sigmoid(A*f(p) + B) with f selected by Feature.
type Platt struct {
	A       float64 `json:"A"`
	B       float64 `json:"B"`
	Feature Feature `json:"feature"`
}

// Isotonic holds the stored shape of a fitted monotone interpolant. X must
// be strictly increasing and Y non-decreasing within [0, 1].
type Isotonic struct {
	X []float64 `json:"x_"`
	Y []float64 `json:"y_"`
}

// Model is the tagged calibration artifact. Exactly one variant is set,
// matching the Method tag; appliers must dispatch exhaustively and treat any
// other tag as a corrupted artifact.
type Model struct {
	Method   Method
	Platt    Platt
	Isotonic Isotonic
}

// modelJSON is the flat wire form shared with older artifacts
type modelJSON struct {
	Method  Method    `json:"method"`
	A       *float64  `json:"A,omitempty"`
	B       *float64  `json:"B,omitempty"`
	Feature Feature   `json:"feature,omitempty"`
	X       []float64 `json:"x_,omitempty"`
	Y       []float64 `json:"y_,omitempty"`
}

// MarshalJSON encodes the model in the flat artifact format
func (m Model) MarshalJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	switch m.Method {
	case MethodPlatt:
		a, b := m.Platt.A, m.Platt.B
		return json.Marshal(modelJSON{Method: MethodPlatt, A: &a, B: &b, Feature: m.Platt.Feature})
	case MethodIsotonic:
		return json.Marshal(modelJSON{Method: MethodIsotonic, X: m.Isotonic.X, Y: m.Isotonic.Y})
	}
	return nil, fmt.Errorf("%w: %q", models.ErrUnknownCalibration, m.Method)
}

// UnmarshalJSON decodes and validates an artifact. A malformed or unknown
// variant is an error here, at construction time, so a corrupted artifact
// can never silently pass probabilities through.
func (m *Model) UnmarshalJSON(data []byte) error {
	var raw modelJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("calibration artifact: %w", err)
	}
	switch raw.Method {
	case MethodPlatt:
		if raw.A == nil || raw.B == nil {
			return fmt.Errorf("calibration artifact: platt model missing A or B")
		}
		feature := raw.Feature
		if feature == "" {
			feature = FeatureLogit
		}
		*m = Model{Method: MethodPlatt, Platt: Platt{A: *raw.A, B: *raw.B, Feature: feature}}
	case MethodIsotonic:
		*m = Model{Method: MethodIsotonic, Isotonic: Isotonic{X: raw.X, Y: raw.Y}}
	default:
		return fmt.Errorf("calibration artifact: %w: %q", models.ErrUnknownCalibration, raw.Method)
	}
	return m.Validate()
}

// Validate enforces the structural invariants of each variant
func (m *Model) Validate() error {
	switch m.Method {
	case MethodPlatt:
		if m.Platt.Feature != FeatureLogit && m.Platt.Feature != FeatureProb {
			return fmt.Errorf("platt model: invalid feature %q", m.Platt.Feature)
		}
		return nil
	case MethodIsotonic:
		iso := m.Isotonic
		if len(iso.X) < 2 || len(iso.X) != len(iso.Y) {
			return fmt.Errorf("isotonic model: need matching threshold arrays of length >= 2, got %d/%d", len(iso.X), len(iso.Y))
		}
		for i := 1; i < len(iso.X); i++ {
			if iso.X[i] <= iso.X[i-1] {
				return fmt.Errorf("isotonic model: x thresholds not strictly increasing at index %d", i)
			}
			if iso.Y[i] < iso.Y[i-1] {
				return fmt.Errorf("isotonic model: y thresholds decrease at index %d", i)
			}
		}
		for i, y := range iso.Y {
			if y < 0 || y > 1 {
				return fmt.Errorf("isotonic model: y threshold %f at index %d outside [0, 1]", y, i)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %q", models.ErrUnknownCalibration, m.Method)
}

// Identity returns the explicitly-flagged identity-like Platt model used
// when every candidate fit is degenerate.
func Identity() Model {
	return Model{Method: MethodPlatt, Platt: Platt{A: 1.0, B: 0.0, Feature: FeatureLogit}}
}
