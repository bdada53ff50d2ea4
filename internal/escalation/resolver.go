// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package escalation

import (
	"strings"

	"github.com/Priyansh0418/Haski-sub003/internal/metrics"
	"github.com/Priyansh0418/Haski-sub003/internal/rules"
)

// Result is the resolved escalation for a set of detected conditions.
// It shares the severity order with rule-engine bundle escalations so the
// API layer can compare the two.
type Result struct {
	Level     rules.Severity `json:"level"`
	Message   string         `json:"message"`
	Urgency   string         `json:"urgency"`
	NextSteps []string       `json:"next_steps"`

	// Source is the condition key that produced this result.
	Source string `json:"source"`
}

// Resolve looks up each detected condition in the catalog and returns the
// single most severe hit, or nil when nothing in the catalog applies.
// Equal severities tie-break by catalog insertion order, so results are
// deterministic for a fixed catalog.
func Resolve(detected []string, catalog *Catalog) *Result {
	if catalog == nil || len(detected) == 0 {
		return nil
	}

	detectedSet := make(map[string]struct{}, len(detected))
	for _, cond := range detected {
		detectedSet[strings.ToLower(strings.TrimSpace(cond))] = struct{}{}
	}

	var best *Result
	for _, key := range catalog.order {
		if _, hit := detectedSet[key]; !hit {
			continue
		}
		rec := catalog.entries[key]
		if rec.Severity == rules.SeverityNone {
			continue
		}
		if best == nil || rec.Severity > best.Level {
			best = &Result{
				Level:     rec.Severity,
				Message:   rec.MedicalAdvice,
				Urgency:   rec.Urgency,
				NextSteps: rec.NextSteps,
				Source:    key,
			}
		}
	}

	if best != nil {
		metrics.EscalationsResolved.WithLabelValues(best.Level.String()).Inc()
	}
	return best
}
