// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package rules

import (
	"sort"

	"github.com/goccy/go-json"
)

// routineSeparator joins routine text when multiple rules contribute to the
// same slot.
const routineSeparator = " -> "

// RoutineEntry is the merged routine advice for one slot.
type RoutineEntry struct {
	Text          string   `json:"text"`
	SourceRuleIDs []string `json:"source_rule_ids"`
}

// DietEntry is the merged set of food items for one diet action.
type DietEntry struct {
	Items         []string `json:"items"`
	SourceRuleIDs []string `json:"source_rule_ids"`
}

// BundleWarning is one de-duplicated warning with its contributing rules.
type BundleWarning struct {
	Text          string   `json:"text"`
	SourceRuleIDs []string `json:"source_rule_ids"`
}

// BundleEscalation is the winning rule-declared escalation for a bundle.
type BundleEscalation struct {
	Level         Severity `json:"level"`
	Message       string   `json:"message"`
	SourceRuleIDs []string `json:"source_rule_ids"`
}

// Bundle is the per-request accumulator merging all matched rules' outputs.
// Built fresh per evaluation and never persisted by this core. Map-valued
// fields serialize with sorted keys, so identical inputs always yield
// byte-identical JSON.
type Bundle struct {
	Routines       map[string]*RoutineEntry `json:"routines"`
	ProductIDs     []string                 `json:"product_ids"`
	ProductTags    []string                 `json:"product_tags"`
	Diet           map[string]*DietEntry    `json:"diet"`
	Warnings       []BundleWarning          `json:"warnings"`
	Escalation     *BundleEscalation        `json:"escalation"`
	AppliedRuleIDs []string                 `json:"applied_rule_ids"`
}

// newBundle returns an empty bundle with non-nil collections, so JSON output
// is stable regardless of how many rules matched.
func newBundle() *Bundle {
	return &Bundle{
		Routines:       make(map[string]*RoutineEntry),
		ProductIDs:     []string{},
		ProductTags:    []string{},
		Diet:           make(map[string]*DietEntry),
		Warnings:       []BundleWarning{},
		AppliedRuleIDs: []string{},
	}
}

// JSON serializes the bundle. Output is deterministic for identical inputs.
func (b *Bundle) JSON() ([]byte, error) {
	return json.Marshal(b)
}

// merge folds one matched rule's actions into the bundle. Rules are merged
// in canonical evaluation order, so every slice in the bundle preserves that
// order.
func (b *Bundle) merge(r *Rule) {
	b.mergeRoutines(r)
	b.ProductIDs = appendUnique(b.ProductIDs, r.Actions.ProductIDs...)
	b.ProductTags = appendUnique(b.ProductTags, r.Actions.ProductTags...)
	b.mergeDiet(r)
	b.mergeWarnings(r)
	b.mergeEscalation(r)
	b.AppliedRuleIDs = append(b.AppliedRuleIDs, r.ID)
}

// mergeRoutines appends routine text per slot, joining multiple
// contributions with the arrow separator.
func (b *Bundle) mergeRoutines(r *Rule) {
	for _, slot := range sortedKeys(r.Actions.Routines) {
		text := r.Actions.Routines[slot]
		entry, ok := b.Routines[slot]
		if !ok {
			b.Routines[slot] = &RoutineEntry{
				Text:          text,
				SourceRuleIDs: []string{r.ID},
			}
			continue
		}
		entry.Text = entry.Text + routineSeparator + text
		entry.SourceRuleIDs = appendUnique(entry.SourceRuleIDs, r.ID)
	}
}

// mergeDiet unions diet items per action key with source tracking.
func (b *Bundle) mergeDiet(r *Rule) {
	for _, action := range sortedKeys(r.Actions.Diet) {
		items := r.Actions.Diet[action]
		entry, ok := b.Diet[action]
		if !ok {
			entry = &DietEntry{Items: []string{}, SourceRuleIDs: []string{}}
			b.Diet[action] = entry
		}
		entry.Items = appendUnique(entry.Items, items...)
		entry.SourceRuleIDs = appendUnique(entry.SourceRuleIDs, r.ID)
	}
}

// mergeWarnings appends warnings with order-preserving de-duplication by
// text; a repeated warning gains the new rule as an additional source.
func (b *Bundle) mergeWarnings(r *Rule) {
	for _, text := range r.Actions.Warnings {
		found := false
		for i := range b.Warnings {
			if b.Warnings[i].Text == text {
				b.Warnings[i].SourceRuleIDs = appendUnique(b.Warnings[i].SourceRuleIDs, r.ID)
				found = true
				break
			}
		}
		if !found {
			b.Warnings = append(b.Warnings, BundleWarning{
				Text:          text,
				SourceRuleIDs: []string{r.ID},
			})
		}
	}
}

// mergeEscalation resolves escalation precedence: a strictly higher severity
// replaces level, message, and sources; an equal severity appends the rule as
// a source and keeps the first message; a lower severity is ignored.
func (b *Bundle) mergeEscalation(r *Rule) {
	if r.Escalation == nil || r.Escalation.Level == SeverityNone {
		return
	}

	switch {
	case b.Escalation == nil || r.Escalation.Level > b.Escalation.Level:
		b.Escalation = &BundleEscalation{
			Level:         r.Escalation.Level,
			Message:       r.Escalation.Message,
			SourceRuleIDs: []string{r.ID},
		}
	case r.Escalation.Level == b.Escalation.Level:
		b.Escalation.SourceRuleIDs = appendUnique(b.Escalation.SourceRuleIDs, r.ID)
	}
}

// sortedKeys returns a map's keys in sorted order. Rule actions are
// expressed as maps in source files; sorting their keys keeps the merge
// independent of map iteration order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// appendUnique appends values not already present, preserving order.
// Rule sets are small; linear scans keep the merge allocation-free and
// deterministic.
func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		present := false
		for _, existing := range dst {
			if existing == v {
				present = true
				break
			}
		}
		if !present {
			dst = append(dst, v)
		}
	}
	return dst
}
