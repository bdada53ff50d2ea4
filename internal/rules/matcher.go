// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package rules

import "strings"

// matchPredicate evaluates one predicate against the fact view.
// A predicate referencing a missing or differently-shaped fact does not
// match; per-request input problems never raise.
func matchPredicate(p Predicate, facts *Facts) bool {
	fact, ok := facts.values[p.Field]
	if !ok {
		return false
	}

	switch p.Kind {
	case PredicateEqualsOneOf:
		if fact.kind != factScalar {
			return false
		}
		for _, v := range p.Values {
			if fact.str == strings.ToLower(v) {
				return true
			}
		}
		return false

	case PredicateContainsAll:
		if fact.kind != factSet {
			return false
		}
		for _, v := range p.Values {
			if _, present := fact.set[strings.ToLower(v)]; !present {
				return false
			}
		}
		return len(p.Values) > 0

	case PredicateInRange:
		if fact.kind != factNumber {
			return false
		}
		return fact.num >= p.Min && fact.num <= p.Max

	default:
		// Unknown kinds are rejected at load time; unreachable for a
		// validated rule set.
		return false
	}
}

// matchConditions evaluates a rule's trigger conditions with AND semantics.
// A rule with no conditions never matches.
func matchConditions(r *Rule, facts *Facts) bool {
	if len(r.Conditions) == 0 {
		return false
	}
	for _, p := range r.Conditions {
		if !matchPredicate(p, facts) {
			return false
		}
	}
	return true
}

// contraindicated reports whether any of the rule's avoid_if keys is active
// for the user.
func contraindicated(r *Rule, active map[string]struct{}) bool {
	for _, key := range r.AvoidIf {
		if _, ok := active[strings.ToLower(key)]; ok {
			return true
		}
	}
	return false
}
