// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

// Package metrics provides Prometheus collectors for the recommendation core.
//
// Collectors are registered with the default registry via promauto; the
// consuming application decides where and whether to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Rule engine metrics

	RuleEvaluations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rule_evaluations_total",
			Help: "Total number of rule set evaluations",
		},
	)

	RulesMatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rules_matched_total",
			Help: "Total number of rules matched across all evaluations",
		},
	)

	RulesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rules_skipped_total",
			Help: "Total number of rules skipped during evaluation",
		},
		[]string{"reason"}, // "contraindicated", "no_match"
	)

	RuleReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rule_reloads_total",
			Help: "Total number of rule set reload attempts",
		},
		[]string{"status"}, // "success", "error"
	)

	ActiveRules = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_rules",
			Help: "Number of rules in the currently active rule set",
		},
	)

	RuleSetVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rule_set_version",
			Help: "Version of the currently active rule set (increments on reload)",
		},
	)

	EvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rule_evaluation_duration_seconds",
			Help:    "Duration of rule set evaluations in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)

	// Escalation metrics

	EscalationsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escalations_resolved_total",
			Help: "Total number of catalog escalations resolved",
		},
		[]string{"level"},
	)

	// Ranking metrics

	RankingRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ranking_requests_total",
			Help: "Total number of product ranking requests",
		},
	)

	ProductsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "products_scored_total",
			Help: "Total number of products scored",
		},
	)

	ProductsFiltered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "products_filtered_total",
			Help: "Total number of products removed by the strict allergen filter",
		},
	)

	AllergenFlags = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allergen_flags_total",
			Help: "Total number of allergen issues flagged on candidate products",
		},
		[]string{"field"}, // "ingredient", "tag", "avoid_for"
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_duration_seconds",
			Help:    "Duration of ranking requests in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)
)
