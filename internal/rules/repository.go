// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package rules

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/Priyansh0418/Haski-sub003/internal/metrics"
)

// ruleSet is one immutable generation of loaded rules, already in canonical
// order. Replaced wholesale on reload, never mutated.
type ruleSet struct {
	rules    []Rule
	version  int64
	loadedAt time.Time
}

// Repository holds the currently active, validated rule set and supports
// atomic hot reload. Safe for concurrent use: readers snapshot the active
// set via an atomic pointer and never block on a writer; Reload is
// serialized by a mutex and swaps the pointer only after the new set has
// fully validated.
type Repository struct {
	active   atomic.Pointer[ruleSet]
	reloadMu sync.Mutex
	logger   zerolog.Logger
}

// NewRepository creates a repository with an empty active rule set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRepository(logger zerolog.Logger) *Repository {
	r := &Repository{
		logger: logger.With().Str("component", "rules").Logger(),
	}
	r.active.Store(&ruleSet{rules: []Rule{}, loadedAt: time.Now()})
	return r
}

// Reload loads a complete new rule set from the source and atomically swaps
// it in. On any error the previous set remains fully active and the error is
// returned; no in-flight evaluation ever observes a half-updated set.
func (r *Repository) Reload(ctx context.Context, source Source) error {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	loaded, err := source.Load(ctx)
	if err != nil {
		metrics.RuleReloads.WithLabelValues("error").Inc()
		r.logger.Error().Err(err).Msg("rule reload failed, keeping previous set")
		return err
	}

	// Copy before sorting so a caller-retained slice is never reordered
	// underneath them.
	rules := make([]Rule, len(loaded))
	copy(rules, loaded)
	sortCanonical(rules)

	prev := r.active.Load()
	next := &ruleSet{
		rules:    rules,
		version:  prev.version + 1,
		loadedAt: time.Now(),
	}
	r.active.Store(next)

	metrics.RuleReloads.WithLabelValues("success").Inc()
	metrics.ActiveRules.Set(float64(len(rules)))
	metrics.RuleSetVersion.Set(float64(next.version))

	r.logger.Info().
		Int("rules", len(rules)).
		Int64("version", next.version).
		Msg("rule set reloaded")

	return nil
}

// Rules returns the active rule set in canonical order. The returned slice
// is shared and must not be modified.
func (r *Repository) Rules() []Rule {
	return r.active.Load().rules
}

// Version returns the active rule set version. Starts at 0 for the empty
// set and increments on every successful reload.
func (r *Repository) Version() int64 {
	return r.active.Load().version
}

// LoadedAt returns when the active rule set was installed.
func (r *Repository) LoadedAt() time.Time {
	return r.active.Load().loadedAt
}

// Evaluate runs the active rule set against one request. The rule set is
// snapshotted once at the start, so a concurrent Reload cannot affect this
// call.
func (r *Repository) Evaluate(profile *Profile, analysis *Analysis) *Bundle {
	bundle, _ := r.EvaluateWithTrace(profile, analysis)
	return bundle
}

// EvaluateWithTrace is Evaluate plus the per-rule match trace, for
// explainability endpoints and tests.
func (r *Repository) EvaluateWithTrace(profile *Profile, analysis *Analysis) (*Bundle, []MatchedRule) {
	snapshot := r.active.Load()

	start := time.Now()
	bundle, trace := EvaluateRules(profile, analysis, snapshot.rules)
	metrics.EvaluationDuration.Observe(time.Since(start).Seconds())

	r.logger.Debug().
		Int64("rule_set_version", snapshot.version).
		Int("rules_evaluated", len(trace)).
		Int("rules_applied", len(bundle.AppliedRuleIDs)).
		Msg("evaluation complete")

	return bundle, trace
}
