// Package config provides configuration management for the Gridiron
// forecasting engine.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Simulation  SimulationConfig  `mapstructure:"simulation" validate:"required"`
	Calibration CalibrationConfig `mapstructure:"calibration" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// SimulationConfig represents the blending and Monte Carlo parameters.
// Every value here is explicit and overridable; none are learned online.
type SimulationConfig struct {
	BlendWeightModel float64 `mapstructure:"blend_weight_model" validate:"gte=0,lte=1"`
	SigmaMargin      float64 `mapstructure:"sigma_margin" validate:"required,gt=0"`
	SigmaTotal       float64 `mapstructure:"sigma_total" validate:"required,gt=0"`
	Samples          int     `mapstructure:"samples" validate:"required,gt=0"`
	Workers          int     `mapstructure:"workers" validate:"required,gt=0"`
	BaselineTotal    float64 `mapstructure:"baseline_total" validate:"required,gt=0"`
	MinBaselineTotal float64 `mapstructure:"min_baseline_total" validate:"required,gt=0"`
	TotalMarginSlope float64 `mapstructure:"total_margin_slope" validate:"gte=0"`
	MarketTotalBlend float64 `mapstructure:"market_total_blend" validate:"gte=0,lte=1"`
}

// CalibrationConfig represents calibration fitting and artifact settings.
// The flat thresholds are the guardrail cutoffs for a nearly-flat Platt fit.
type CalibrationConfig struct {
	FlatSlopeThreshold float64 `mapstructure:"flat_slope_threshold" validate:"required,gt=0"`
	FlatRangeThreshold float64 `mapstructure:"flat_range_threshold" validate:"required,gt=0"`
	MinSampleSize      int     `mapstructure:"min_sample_size" validate:"required,gt=0"`
	Epsilon            float64 `mapstructure:"epsilon" validate:"required,gt=0,lt=0.5"`
	ArtifactPath       string  `mapstructure:"artifact_path" validate:"required"`
	MetaPath           string  `mapstructure:"meta_path" validate:"required"`
	CacheTTLSeconds    int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// DatabaseConfig represents the optional Postgres connection used to load
// ratings and persist predictions. The CSV path works without it.
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
