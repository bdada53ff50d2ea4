// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package ranking

import "fmt"

// Config contains all configuration for the ranking engine.
type Config struct {
	// Weights defines the relative contribution of each sub-score.
	// Normalized at runtime, so they don't need to sum to 1.0.
	Weights Weights `koanf:"weights" json:"weights"`

	// Limits contains operational limits.
	Limits LimitsConfig `koanf:"limits" json:"limits"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the number of results returned when the caller passes
	// k <= 0. Default: 10.
	DefaultK int `koanf:"default_k" json:"default_k" validate:"min=1"`

	// MaxK caps the number of results a caller can request. Default: 50.
	MaxK int `koanf:"max_k" json:"max_k" validate:"min=1"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: DefaultWeights(),
		Limits: LimitsConfig{
			DefaultK: 10,
			MaxK:     50,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Weights.Safety < 0 || c.Weights.Quality < 0 ||
		c.Weights.Feedback < 0 || c.Weights.ConditionMatch < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", c.Weights)
	}
	if sum := c.Weights.Safety + c.Weights.Quality + c.Weights.Feedback + c.Weights.ConditionMatch; sum == 0 {
		return fmt.Errorf("at least one weight must be positive")
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d",
			c.Limits.MaxK, c.Limits.DefaultK)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	return &Config{
		Weights: c.Weights,
		Limits:  c.Limits,
	}
}
