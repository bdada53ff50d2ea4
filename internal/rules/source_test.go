// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package rules

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRulesYAML = `rules:
  - id: r001
    name: Oily skin with acne
    priority: 2
    conditions:
      - kind: equals_one_of
        field: skin_type
        values: [oily]
      - kind: contains_all
        field: conditions_detected
        values: [acne]
    actions:
      product_tags: [acne-care]
      routines:
        morning: Gentle foaming cleanser
      diet:
        increase: [water]
      warnings:
        - Avoid heavy occlusive moisturizers
  - id: r008
    name: Severe acne escalation
    priority: 0
    conditions:
      - kind: contains_all
        field: conditions_detected
        values: [severe_acne]
    avoid_if: [pregnancy]
    actions:
      product_tags: [medicated]
    escalation:
      level: urgent
      message: See a dermatologist promptly
  - id: r010
    name: Mature oily skin
    priority: 3
    conditions:
      - kind: in_range
        field: age
        min: 40
        max: 120
      - kind: equals_one_of
        field: skin_type
        values: [oily]
    actions:
      product_tags: [anti-aging]
`

const sampleRulesJSON = `{
  "rules": [
    {
      "id": "r001",
      "name": "Oily skin with acne",
      "priority": 2,
      "conditions": [
        {"kind": "equals_one_of", "field": "skin_type", "values": ["oily"]}
      ],
      "actions": {"product_tags": ["acne-care"]}
    }
  ]
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileSourceYAML(t *testing.T) {
	src := &FileSource{Path: writeTempFile(t, "rules.yaml", sampleRulesYAML)}

	rules, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 3)

	byID := make(map[string]Rule, len(rules))
	for _, r := range rules {
		byID[r.ID] = r
	}

	r001 := byID["r001"]
	assert.Equal(t, 2, r001.Priority)
	require.Len(t, r001.Conditions, 2)
	assert.Equal(t, PredicateEqualsOneOf, r001.Conditions[0].Kind)
	assert.Equal(t, "skin_type", r001.Conditions[0].Field)
	assert.Equal(t, "Gentle foaming cleanser", r001.Actions.Routines["morning"])

	r008 := byID["r008"]
	require.NotNil(t, r008.Escalation)
	assert.Equal(t, SeverityUrgent, r008.Escalation.Level)
	assert.Equal(t, []string{"pregnancy"}, r008.AvoidIf)

	r010 := byID["r010"]
	require.Len(t, r010.Conditions, 2)
	assert.Equal(t, PredicateInRange, r010.Conditions[0].Kind)
	assert.Equal(t, 40.0, r010.Conditions[0].Min)
	assert.Equal(t, 120.0, r010.Conditions[0].Max)
}

func TestFileSourceJSON(t *testing.T) {
	src := &FileSource{Path: writeTempFile(t, "rules.json", sampleRulesJSON)}

	rules, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "r001", rules[0].ID)
}

func TestFileSourceUnsupportedExtension(t *testing.T) {
	src := &FileSource{Path: writeTempFile(t, "rules.toml", "rules = []")}

	_, err := src.Load(context.Background())
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestFileSourceMissingFile(t *testing.T) {
	src := &FileSource{Path: filepath.Join(t.TempDir(), "nope.yaml")}

	_, err := src.Load(context.Background())
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestFileSourceUnknownPredicateKind(t *testing.T) {
	content := `rules:
  - id: r001
    priority: 1
    conditions:
      - kind: fuzzy_match
        field: skin_type
        values: [oily]
    actions: {}
`
	src := &FileSource{Path: writeTempFile(t, "rules.yaml", content)}

	_, err := src.Load(context.Background())
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "r001", cfgErr.RuleID)
	assert.Contains(t, err.Error(), "fuzzy_match")
}

func TestFileSourceUnknownEscalationLevel(t *testing.T) {
	content := `rules:
  - id: r001
    priority: 1
    conditions:
      - kind: equals_one_of
        field: skin_type
        values: [oily]
    actions: {}
    escalation:
      level: apocalyptic
`
	src := &FileSource{Path: writeTempFile(t, "rules.yaml", content)}

	_, err := src.Load(context.Background())
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "escalation.level", cfgErr.Field)
}

func TestFileSourceInRangeMissingBounds(t *testing.T) {
	content := `rules:
  - id: r001
    priority: 1
    conditions:
      - kind: in_range
        field: age
        min: 10
    actions: {}
`
	src := &FileSource{Path: writeTempFile(t, "rules.yaml", content)}

	_, err := src.Load(context.Background())
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestStaticSourceValidates(t *testing.T) {
	src := &StaticSource{Rules: []Rule{
		{ID: "dup", Priority: 1, Conditions: []Predicate{{Kind: PredicateEqualsOneOf, Field: "skin_type", Values: []string{"oily"}}}},
		{ID: "dup", Priority: 2, Conditions: []Predicate{{Kind: PredicateEqualsOneOf, Field: "skin_type", Values: []string{"dry"}}}},
	}}

	_, err := src.Load(context.Background())
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "dup", cfgErr.RuleID)
}

func TestValidateRulesRejectsBadRange(t *testing.T) {
	err := ValidateRules([]Rule{{
		ID:       "r1",
		Priority: 1,
		Conditions: []Predicate{
			{Kind: PredicateInRange, Field: "age", Min: 50, Max: 10},
		},
	}})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestValidateRulesRejectsEmptyID(t *testing.T) {
	err := ValidateRules([]Rule{{
		Priority: 1,
		Conditions: []Predicate{
			{Kind: PredicateEqualsOneOf, Field: "skin_type", Values: []string{"oily"}},
		},
	}})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "id", cfgErr.Field)
}

func TestFileSourceThroughRepository(t *testing.T) {
	repo := newTestRepository(t)
	src := &FileSource{Path: writeTempFile(t, "rules.yaml", sampleRulesYAML)}

	require.NoError(t, repo.Reload(context.Background(), src))
	require.Len(t, repo.Rules(), 3)

	// Canonical order: r008 (priority 0) first.
	assert.Equal(t, "r008", repo.Rules()[0].ID)

	bundle := repo.Evaluate(
		&Profile{SkinType: SkinOily},
		&Analysis{Conditions: []string{"acne", "severe_acne"}},
	)
	assert.Equal(t, []string{"r008", "r001"}, bundle.AppliedRuleIDs)
	require.NotNil(t, bundle.Escalation)
	assert.Equal(t, SeverityUrgent, bundle.Escalation.Level)
}
