// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 10, cfg.Ranking.Limits.DefaultK)
	assert.Equal(t, 50, cfg.Ranking.Limits.MaxK)
	assert.Empty(t, cfg.Rules.Path)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: debug
  format: console
rules:
  path: /data/rules.yaml
  watch: true
ranking:
  limits:
    default_k: 5
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "/data/rules.yaml", cfg.Rules.Path)
	assert.True(t, cfg.Rules.Watch)
	assert.Equal(t, 5, cfg.Ranking.Limits.DefaultK)
	// Untouched sections keep their defaults.
	assert.Equal(t, 50, cfg.Ranking.Limits.MaxK)
	assert.Equal(t, 0.25, cfg.Ranking.Weights.Safety)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: debug
`)
	t.Setenv("HASKI_LOGGING_LEVEL", "error")
	t.Setenv("HASKI_RULES_PATH", "/etc/haski/rules.yaml")
	t.Setenv("HASKI_RANKING_LIMITS_DEFAULT_K", "3")
	t.Setenv("HASKI_ESCALATION_CATALOG_PATH", "/etc/haski/escalation.yaml")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "/etc/haski/rules.yaml", cfg.Rules.Path)
	assert.Equal(t, 3, cfg.Ranking.Limits.DefaultK)
	assert.Equal(t, "/etc/haski/escalation.yaml", cfg.Escalation.CatalogPath)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "bad log level",
			yaml: "logging:\n  level: verbose\n",
		},
		{
			name: "bad log format",
			yaml: "logging:\n  format: xml\n",
		},
		{
			name: "zero default_k",
			yaml: "ranking:\n  limits:\n    default_k: 0\n",
		},
		{
			name: "max_k below default_k",
			yaml: "ranking:\n  limits:\n    max_k: 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfigFile(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile("/nonexistent/haski.yaml")
	assert.Error(t, err)
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HASKI_LOGGING_LEVEL", "logging.level"},
		{"HASKI_LOGGING_FORMAT", "logging.format"},
		{"HASKI_RULES_PATH", "rules.path"},
		{"HASKI_RULES_WATCH", "rules.watch"},
		{"HASKI_ESCALATION_CATALOG_PATH", "escalation.catalog_path"},
		{"HASKI_RANKING_LIMITS_DEFAULT_K", "ranking.limits.default_k"},
		{"HASKI_RANKING_LIMITS_MAX_K", "ranking.limits.max_k"},
		{"HASKI_RANKING_WEIGHTS_SAFETY", "ranking.weights.safety"},
		{"HASKI_RANKING_WEIGHTS_CONDITION_MATCH", "ranking.weights.condition_match"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, envTransformFunc(tt.in), tt.in)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "haski.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
