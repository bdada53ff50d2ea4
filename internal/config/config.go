// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Priyansh0418/Haski-sub003/internal/ranking"
)

// Config is the complete engine configuration.
type Config struct {
	Logging    LoggingConfig    `koanf:"logging" json:"logging"`
	Rules      RulesConfig      `koanf:"rules" json:"rules"`
	Escalation EscalationConfig `koanf:"escalation" json:"escalation"`
	Ranking    ranking.Config   `koanf:"ranking" json:"ranking"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" json:"level" validate:"oneof=trace debug info warn warning error disabled"`

	// Format is the output format: json or console.
	Format string `koanf:"format" json:"format" validate:"oneof=json console"`

	// Timestamp enables timestamps in log output.
	Timestamp bool `koanf:"timestamp" json:"timestamp"`
}

// RulesConfig configures the rule repository.
type RulesConfig struct {
	// Path is the rule file loaded at startup (.yaml, .yml or .json).
	// Empty means the repository starts with no rules.
	Path string `koanf:"path" json:"path"`

	// Watch reloads the rule file when it changes on disk.
	Watch bool `koanf:"watch" json:"watch"`
}

// EscalationConfig configures the escalation catalog.
type EscalationConfig struct {
	// CatalogPath is a YAML escalation catalog. Empty uses the built-in
	// default catalog.
	CatalogPath string `koanf:"catalog_path" json:"catalog_path"`
}

// Default returns a Config with production defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			Timestamp: true,
		},
		Rules: RulesConfig{
			Path:  "",
			Watch: false,
		},
		Escalation: EscalationConfig{
			CatalogPath: "",
		},
		Ranking: *ranking.DefaultConfig(),
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := structValidator().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := c.Ranking.Validate(); err != nil {
		return fmt.Errorf("ranking config: %w", err)
	}
	return nil
}
