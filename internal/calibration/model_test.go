package calibration

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yourusername/gridiron/internal/models"
)

func TestModelJSONPlatt(t *testing.T) {
	model := Model{Method: MethodPlatt, Platt: Platt{A: 0.85, B: -0.02, Feature: FeatureLogit}}

	data, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(data)
	for _, key := range []string{`"method":"platt"`, `"A":0.85`, `"B":-0.02`, `"feature":"logit"`} {
		if !strings.Contains(s, key) {
			t.Fatalf("artifact missing %s: %s", key, s)
		}
	}

	var back Model
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Method != model.Method || back.Platt != model.Platt {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, model)
	}
}

func TestModelJSONIsotonic(t *testing.T) {
	model := Model{Method: MethodIsotonic, Isotonic: Isotonic{
		X: []float64{0.1, 0.4, 0.9},
		Y: []float64{0.15, 0.45, 0.85},
	}}

	data, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"x_":[0.1,0.4,0.9]`) || !strings.Contains(s, `"y_":[0.15,0.45,0.85]`) {
		t.Fatalf("artifact uses wrong threshold keys: %s", s)
	}

	var back Model
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Method != MethodIsotonic || len(back.Isotonic.X) != 3 {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestModelUnmarshalUnknownMethod(t *testing.T) {
	var m Model
	err := json.Unmarshal([]byte(`{"method":"spline","A":1,"B":0}`), &m)
	if !errors.Is(err, models.ErrUnknownCalibration) {
		t.Fatalf("expected ErrUnknownCalibration, got %v", err)
	}
}

func TestModelUnmarshalMalformed(t *testing.T) {
	cases := map[string]string{
		"platt without params":   `{"method":"platt"}`,
		"isotonic single point":  `{"method":"isotonic","x_":[0.5],"y_":[0.5]}`,
		"isotonic unsorted x":    `{"method":"isotonic","x_":[0.5,0.3],"y_":[0.4,0.6]}`,
		"isotonic decreasing y":  `{"method":"isotonic","x_":[0.3,0.5],"y_":[0.6,0.4]}`,
		"isotonic y out of unit": `{"method":"isotonic","x_":[0.3,0.5],"y_":[0.4,1.6]}`,
	}
	for name, raw := range cases {
		var m Model
		if err := json.Unmarshal([]byte(raw), &m); err == nil {
			t.Fatalf("%s: expected rejection", name)
		}
	}
}

func TestModelUnmarshalDefaultsFeature(t *testing.T) {
	var m Model
	if err := json.Unmarshal([]byte(`{"method":"platt","A":0.9,"B":0.1}`), &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if m.Platt.Feature != FeatureLogit {
		t.Fatalf("missing feature should default to logit, got %q", m.Platt.Feature)
	}
}

func TestSaveLoadModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calibration.json")
	model := Model{Method: MethodPlatt, Platt: Platt{A: 0.9, B: 0.05, Feature: FeatureLogit}}

	if err := SaveModel(path, model); err != nil {
		t.Fatalf("SaveModel failed: %v", err)
	}
	back, err := LoadModel(path)
	if err != nil {
		t.Fatalf("LoadModel failed: %v", err)
	}
	if back.Method != model.Method || back.Platt != model.Platt {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	if _, err := LoadModel(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing artifact")
	}
}

func TestLoadModelCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := LoadModel(path); err == nil {
		t.Fatal("expected an error for a corrupted artifact")
	}
}
