// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"haski.yaml",
	"haski.yml",
	"/etc/haski/config.yaml",
	"/etc/haski/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "HASKI_CONFIG"

// envPrefix namespaces every recognized environment variable.
const envPrefix = "HASKI_"

// Load builds configuration from layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: HASKI_* overrides any setting
//
// Precedence is ENV > file > defaults.
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit config file path. An empty path skips the
// file layer.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// HASKI_LOGGING_LEVEL -> logging.level
	// HASKI_RULES_PATH -> rules.path
	// HASKI_RANKING_LIMITS_DEFAULT_K -> ranking.limits.default_k
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches the env override and then the default paths.
// Returns the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Compound leaf keys keep their underscores via an explicit mapping; every
// other key maps section by section.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	// Leaf keys that contain underscores themselves.
	envMappings := map[string]string{
		"escalation_catalog_path":         "escalation.catalog_path",
		"ranking_limits_default_k":        "ranking.limits.default_k",
		"ranking_limits_max_k":            "ranking.limits.max_k",
		"ranking_weights_condition_match": "ranking.weights.condition_match",
	}
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return strings.ReplaceAll(key, "_", ".")
}

// WatchConfigFile invokes callback whenever the file at path changes. The
// caller reloads and swaps its own configuration under its own lock.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
