// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package rules

import "fmt"

// Severity is the total order of medical escalation levels.
// Used both by rule-declared escalations and the condition catalog.
type Severity int

const (
	// SeverityNone means no escalation.
	SeverityNone Severity = iota
	// SeverityWarning suggests keeping an eye on the condition.
	SeverityWarning
	// SeverityCaution suggests consulting a professional if symptoms persist.
	SeverityCaution
	// SeverityUrgent suggests seeing a professional soon.
	SeverityUrgent
	// SeverityEmergency requires immediate medical attention.
	SeverityEmergency
)

// String returns the wire name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityWarning:
		return "warning"
	case SeverityCaution:
		return "caution"
	case SeverityUrgent:
		return "urgent"
	case SeverityEmergency:
		return "emergency"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so severities serialize as
// their wire names in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSeverity converts a wire name to a Severity.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "none", "":
		return SeverityNone, nil
	case "warning":
		return SeverityWarning, nil
	case "caution":
		return SeverityCaution, nil
	case "urgent":
		return SeverityUrgent, nil
	case "emergency":
		return SeverityEmergency, nil
	default:
		return SeverityNone, fmt.Errorf("unknown severity %q", name)
	}
}

// PredicateKind identifies the closed set of predicate variants.
type PredicateKind int

const (
	// PredicateEqualsOneOf matches when a scalar fact equals any listed value.
	PredicateEqualsOneOf PredicateKind = iota
	// PredicateContainsAll matches when a set fact contains every listed value.
	PredicateContainsAll
	// PredicateInRange matches when a numeric fact lies in [Min, Max].
	PredicateInRange
)

// String returns the wire name of the predicate kind.
func (k PredicateKind) String() string {
	switch k {
	case PredicateEqualsOneOf:
		return "equals_one_of"
	case PredicateContainsAll:
		return "contains_all"
	case PredicateInRange:
		return "in_range"
	default:
		return "unknown"
	}
}

// ParsePredicateKind converts a wire name to a PredicateKind.
func ParsePredicateKind(name string) (PredicateKind, error) {
	switch name {
	case "equals_one_of":
		return PredicateEqualsOneOf, nil
	case "contains_all":
		return PredicateContainsAll, nil
	case "in_range":
		return PredicateInRange, nil
	default:
		return PredicateEqualsOneOf, fmt.Errorf("unknown predicate kind %q", name)
	}
}

// Predicate is one trigger condition applied to the merged profile+analysis
// fact view. The zero Min/Max are meaningful for in_range predicates, so
// sources populate them explicitly.
type Predicate struct {
	Kind  PredicateKind `json:"kind"`
	Field string        `json:"field"`

	// Values is used by equals_one_of and contains_all.
	Values []string `json:"values,omitempty"`

	// Min and Max bound in_range predicates (inclusive).
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// RuleEscalation is a rule-declared medical escalation.
type RuleEscalation struct {
	Level   Severity `json:"level"`
	Message string   `json:"message"`
}

// Actions holds everything a matched rule contributes to the bundle.
type Actions struct {
	// ProductIDs references concrete catalog products.
	ProductIDs []string `json:"product_ids,omitempty"`

	// ProductTags references catalog products by tag.
	ProductTags []string `json:"product_tags,omitempty"`

	// Routines maps a routine slot (e.g. "morning", "evening") to advice text.
	Routines map[string]string `json:"routines,omitempty"`

	// Diet maps a diet action (e.g. "increase", "avoid") to food items.
	Diet map[string][]string `json:"diet,omitempty"`

	// Warnings are user-facing cautionary notes.
	Warnings []string `json:"warnings,omitempty"`
}

// Rule is a named, prioritized unit combining trigger conditions,
// contraindications, and recommended actions. Rules are immutable once
// loaded: the Repository replaces the whole set on reload and never mutates
// individual rules.
type Rule struct {
	// ID is unique within a rule set.
	ID string `json:"id"`

	// Name is a human-readable label.
	Name string `json:"name"`

	// Priority orders evaluation and escalation precedence.
	// Lower numbers win.
	Priority int `json:"priority"`

	// Conditions is an ordered AND-list of trigger predicates.
	Conditions []Predicate `json:"conditions"`

	// AvoidIf lists contraindication keys (e.g. "pregnancy") that
	// unconditionally disqualify the rule for a user.
	AvoidIf []string `json:"avoid_if,omitempty"`

	// Actions are merged into the bundle when the rule matches.
	Actions Actions `json:"actions"`

	// Escalation is an optional rule-declared medical escalation.
	Escalation *RuleEscalation `json:"escalation,omitempty"`
}

// SkippedReason explains why a rule did not contribute to a bundle.
type SkippedReason string

const (
	// SkippedNone means the rule matched.
	SkippedNone SkippedReason = ""
	// SkippedContraindicated means an avoid_if key was active for the user.
	SkippedContraindicated SkippedReason = "contraindicated"
	// SkippedNoMatch means at least one condition predicate did not hold.
	SkippedNoMatch SkippedReason = "no_match"
)

// MatchedRule records the outcome of evaluating one rule. Transient,
// produced during a single evaluation for tracing and tests.
type MatchedRule struct {
	RuleID        string        `json:"rule_id"`
	Matched       bool          `json:"matched"`
	SkippedReason SkippedReason `json:"skipped_reason,omitempty"`
}
