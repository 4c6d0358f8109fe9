package calibration

import (
	"errors"
	"math"
	"testing"

	"github.com/yourusername/gridiron/internal/mathx"
	"github.com/yourusername/gridiron/internal/models"
)

func TestApplierPlattLogit(t *testing.T) {
	model := Model{Method: MethodPlatt, Platt: Platt{A: 0.8, B: 0.1, Feature: FeatureLogit}}
	a, err := NewApplier(model, mathx.ProbEpsilon)
	if err != nil {
		t.Fatalf("NewApplier failed: %v", err)
	}

	got, err := a.Apply(0.7)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	want := mathx.Sigmoid(0.8*mathx.Logit(0.7) + 0.1)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestApplierPlattProbFeature(t *testing.T) {
	model := Model{Method: MethodPlatt, Platt: Platt{A: 2.0, B: -1.0, Feature: FeatureProb}}
	a, err := NewApplier(model, mathx.ProbEpsilon)
	if err != nil {
		t.Fatalf("NewApplier failed: %v", err)
	}

	got, err := a.Apply(0.6)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	want := mathx.Sigmoid(2.0*0.6 - 1.0)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestApplierOutputStrictlyInsideUnit(t *testing.T) {
	model := Model{Method: MethodPlatt, Platt: Platt{A: 10.0, B: 0.0, Feature: FeatureLogit}}
	a, err := NewApplier(model, 1e-6)
	if err != nil {
		t.Fatalf("NewApplier failed: %v", err)
	}

	for _, p := range []float64{0.0, 1e-9, 0.999999999, 1.0} {
		got, err := a.Apply(p)
		if err != nil {
			t.Fatalf("Apply(%v) failed: %v", p, err)
		}
		if got <= 0 || got >= 1 {
			t.Fatalf("Apply(%v) = %v, must be strictly inside (0, 1)", p, got)
		}
	}
}

func TestApplierIsotonic(t *testing.T) {
	model := Model{Method: MethodIsotonic, Isotonic: Isotonic{
		X: []float64{0.2, 0.5, 0.8},
		Y: []float64{0.3, 0.5, 0.7},
	}}
	a, err := NewApplier(model, mathx.ProbEpsilon)
	if err != nil {
		t.Fatalf("NewApplier failed: %v", err)
	}

	// interior interpolation
	got, err := a.Apply(0.35)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if math.Abs(got-0.4) > 1e-12 {
		t.Fatalf("want 0.4, got %v", got)
	}
	// clamped ends
	lo, _ := a.Apply(0.01)
	hi, _ := a.Apply(0.99)
	if lo != 0.3 || hi != 0.7 {
		t.Fatalf("end clamps wrong: %v / %v", lo, hi)
	}
}

func TestApplierIsotonicMonotone(t *testing.T) {
	model := Model{Method: MethodIsotonic, Isotonic: Isotonic{
		X: []float64{0.1, 0.3, 0.6, 0.9},
		Y: []float64{0.2, 0.2, 0.55, 0.85},
	}}
	a, err := NewApplier(model, mathx.ProbEpsilon)
	if err != nil {
		t.Fatalf("NewApplier failed: %v", err)
	}

	prev := -1.0
	for p := 0.0; p <= 1.0; p += 0.01 {
		got, err := a.Apply(p)
		if err != nil {
			t.Fatalf("Apply(%v) failed: %v", p, err)
		}
		if got < prev {
			t.Fatalf("calibrated output decreased at p=%v: %v < %v", p, got, prev)
		}
		prev = got
	}
}

func TestNewApplierRejectsInvalidModel(t *testing.T) {
	_, err := NewApplier(Model{Method: "spline"}, mathx.ProbEpsilon)
	if !errors.Is(err, models.ErrUnknownCalibration) {
		t.Fatalf("expected ErrUnknownCalibration, got %v", err)
	}

	_, err = NewApplier(Model{Method: MethodIsotonic, Isotonic: Isotonic{
		X: []float64{0.5, 0.5},
		Y: []float64{0.4, 0.6},
	}}, mathx.ProbEpsilon)
	if err == nil {
		t.Fatal("expected non-increasing x thresholds to be rejected")
	}
}

func TestApplyBatch(t *testing.T) {
	a, err := NewApplier(Identity(), mathx.ProbEpsilon)
	if err != nil {
		t.Fatalf("NewApplier failed: %v", err)
	}

	in := []float64{0.2, 0.5, 0.8}
	out, err := a.ApplyBatch(in)
	if err != nil {
		t.Fatalf("ApplyBatch failed: %v", err)
	}
	for i := range in {
		if math.Abs(out[i]-in[i]) > 1e-9 {
			t.Fatalf("identity model changed %v to %v", in[i], out[i])
		}
	}
}
