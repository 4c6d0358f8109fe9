package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveModel persists a calibration model as JSON. The write is atomic
// (temp file + rename) so a concurrent applier never observes a partial
// artifact.
func SaveModel(path string, model Model) error {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode calibration model: %w", err)
	}
	return writeAtomic(path, data)
}

// LoadModel reads and validates a calibration artifact
func LoadModel(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("failed to read calibration artifact %s: %w", path, err)
	}
	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return Model{}, fmt.Errorf("calibration artifact %s: %w", path, err)
	}
	return model, nil
}

// SaveMeta persists the selection metadata next to the artifact
func SaveMeta(path string, meta any) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode calibration metadata: %w", err)
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".calibration-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
