// Package config provides configuration management for the Gridiron
// forecasting engine.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment
// variables. It expands environment variable placeholders in the YAML file
// (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for every
// modeling constant, so the engine runs from environment variables alone.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GRIDIRON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// setDefaults pins the documented modeling constants: 60/40 model-market
// blend, NFL-typical sigmas, and the calibration guardrail thresholds.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gridiron")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("simulation.blend_weight_model", 0.60)
	v.SetDefault("simulation.sigma_margin", 13.5)
	v.SetDefault("simulation.sigma_total", 9.5)
	v.SetDefault("simulation.samples", 50000)
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.baseline_total", 44.0)
	v.SetDefault("simulation.min_baseline_total", 35.0)
	v.SetDefault("simulation.total_margin_slope", 0.2)
	v.SetDefault("simulation.market_total_blend", 0.7)

	v.SetDefault("calibration.flat_slope_threshold", 0.1)
	v.SetDefault("calibration.flat_range_threshold", 0.05)
	v.SetDefault("calibration.min_sample_size", 200)
	v.SetDefault("calibration.epsilon", 1e-6)
	v.SetDefault("calibration.artifact_path", "artifacts/calibration.json")
	v.SetDefault("calibration.meta_path", "artifacts/calibrator_meta.json")
	v.SetDefault("calibration.cache_ttl_seconds", 300)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}
