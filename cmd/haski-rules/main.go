// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

// Package main is the rule-file tool for the Haski recommendation core.
//
// It loads the engine configuration, validates the configured rule file and
// escalation catalog, and reports what it finds. With rules.watch enabled it
// stays running and hot-reloads the rule file on change, which makes it a
// convenient sidecar during rule authoring:
//
//	HASKI_RULES_PATH=rules.yaml HASKI_RULES_WATCH=true ./haski-rules
//
// Configuration is loaded via Koanf with layered sources (highest priority
// wins): HASKI_* environment variables, config file (haski.yaml), built-in
// defaults.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Priyansh0418/Haski-sub003/internal/config"
	"github.com/Priyansh0418/Haski-sub003/internal/escalation"
	"github.com/Priyansh0418/Haski-sub003/internal/logging"
	"github.com/Priyansh0418/Haski-sub003/internal/rules"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "haski-rules: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: cfg.Logging.Timestamp,
	})
	logger := logging.Component("haski-rules")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalog, err := loadCatalog(ctx, cfg.Escalation.CatalogPath)
	if err != nil {
		return fmt.Errorf("load escalation catalog: %w", err)
	}
	logger.Info().
		Int("conditions", catalog.Len()).
		Str("source", catalogSourceName(cfg.Escalation.CatalogPath)).
		Msg("escalation catalog loaded")

	if cfg.Rules.Path == "" {
		logger.Warn().Msg("no rule file configured, nothing to validate")
		return nil
	}

	repo := rules.NewRepository(logging.Component("rules"))
	source := &rules.FileSource{Path: cfg.Rules.Path}

	if err := repo.Reload(ctx, source); err != nil {
		var cfgErr *rules.ConfigError
		if errors.As(err, &cfgErr) {
			logger.Error().
				Str("rule_id", cfgErr.RuleID).
				Str("field", cfgErr.Field).
				Str("reason", cfgErr.Reason).
				Msg("rule file invalid")
		}
		return fmt.Errorf("load rules from %s: %w", cfg.Rules.Path, err)
	}
	logger.Info().
		Str("path", cfg.Rules.Path).
		Int("rules", len(repo.Rules())).
		Int64("version", repo.Version()).
		Msg("rule file valid")

	if !cfg.Rules.Watch {
		return nil
	}

	return watchRules(repo, source, cfg.Rules.Path, logger)
}

// loadCatalog loads the YAML catalog at path, or the built-in default when
// path is empty.
func loadCatalog(ctx context.Context, path string) (*escalation.Catalog, error) {
	if path == "" {
		return escalation.DefaultCatalog(), nil
	}
	source := &escalation.FileCatalogSource{Path: path}
	return source.Load(ctx)
}

func catalogSourceName(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}

// watchRules hot-reloads the rule file on change until SIGINT or SIGTERM.
// A failed reload keeps the previous rule set active.
func watchRules(repo *rules.Repository, source rules.Source, path string, logger zerolog.Logger) error {
	err := config.WatchConfigFile(path, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := repo.Reload(ctx, source); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("rule reload failed, previous set stays active")
			return
		}
		logger.Info().
			Int("rules", len(repo.Rules())).
			Int64("version", repo.Version()).
			Msg("rule file reloaded")
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("watching rule file, ctrl-c to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down")
	return nil
}
