// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

// Package rules implements the deterministic rule matching and aggregation
// engine that converts a user's profile and condition analysis into a merged
// recommendation bundle.
//
// # Architecture
//
// The package is built around three pieces:
//
//   - Repository: holds the currently active, validated, immutable rule set
//     and supports atomic hot reload. Readers take a snapshot at the start of
//     an evaluation; a concurrent reload can never tear the set mid-flight.
//   - Matching: each rule carries an ordered AND-list of predicates plus a
//     list of contraindication keys (avoid_if). Predicates are a closed
//     tagged variant (equals_one_of, contains_all, in_range) validated at
//     load time, so an unknown kind is a configuration error rather than a
//     silent no-op at evaluation time.
//   - Aggregation: matched rules are merged into a Bundle in canonical order
//     (priority ascending, then rule ID), joining routine text, unioning
//     product references and diet items, de-duplicating warnings, and
//     resolving escalation precedence.
//
// # Determinism
//
// Identical (profile, analysis, rule set) inputs always produce an identical
// bundle: the evaluation order is a total order computed once at load, and no
// merge step iterates an unordered map.
//
// # Failure semantics
//
// Malformed rules (duplicate IDs, unknown predicate or escalation kinds) are
// rejected at load time with a *ConfigError. Evaluation never raises on bad
// per-request data; a predicate referencing a missing fact simply does not
// match.
package rules
