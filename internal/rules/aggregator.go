// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package rules

import (
	"github.com/Priyansh0418/Haski-sub003/internal/metrics"
)

// EvaluateRules evaluates a rule set against one request and merges every
// matched rule's actions into a fresh bundle. Pure: inputs are never
// mutated, and identical inputs always produce an identical bundle.
//
// The rules slice must already be in canonical (priority, id) order, which
// the Repository guarantees for its active set. Callers passing their own
// slice get source order, so they should sort first if precedence matters.
func EvaluateRules(profile *Profile, analysis *Analysis, rules []Rule) (*Bundle, []MatchedRule) {
	metrics.RuleEvaluations.Inc()

	facts := mergeFacts(profile, analysis)
	active := activeContraindications(profile)

	bundle := newBundle()
	trace := make([]MatchedRule, 0, len(rules))

	for i := range rules {
		r := &rules[i]

		if contraindicated(r, active) {
			metrics.RulesSkipped.WithLabelValues(string(SkippedContraindicated)).Inc()
			trace = append(trace, MatchedRule{
				RuleID:        r.ID,
				SkippedReason: SkippedContraindicated,
			})
			continue
		}

		if !matchConditions(r, facts) {
			metrics.RulesSkipped.WithLabelValues(string(SkippedNoMatch)).Inc()
			trace = append(trace, MatchedRule{
				RuleID:        r.ID,
				SkippedReason: SkippedNoMatch,
			})
			continue
		}

		metrics.RulesMatched.Inc()
		bundle.merge(r)
		trace = append(trace, MatchedRule{RuleID: r.ID, Matched: true})
	}

	return bundle, trace
}

func activeContraindications(profile *Profile) map[string]struct{} {
	if profile == nil {
		return map[string]struct{}{}
	}
	return profile.ActiveContraindications()
}
