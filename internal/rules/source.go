// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package rules

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Source supplies a complete rule set. Invoked only by Repository.Reload.
type Source interface {
	// Load parses and returns the full rule set, or a *ConfigError when the
	// source is malformed.
	Load(ctx context.Context) ([]Rule, error)
}

// StaticSource serves an in-memory rule set. Used in tests and by callers
// that embed their rules.
type StaticSource struct {
	Rules []Rule
}

// Load validates and returns the static rules.
func (s *StaticSource) Load(_ context.Context) ([]Rule, error) {
	if err := ValidateRules(s.Rules); err != nil {
		return nil, err
	}
	return s.Rules, nil
}

// FileSource loads rules from a YAML or JSON file. The format is chosen by
// file extension: .yaml/.yml via koanf, .json via goccy.
type FileSource struct {
	Path string
}

// rawRuleFile mirrors the on-disk rule file layout.
type rawRuleFile struct {
	Rules []rawRule `koanf:"rules" json:"rules" validate:"required,min=1,dive"`
}

type rawRule struct {
	ID         string         `koanf:"id" json:"id" validate:"required"`
	Name       string         `koanf:"name" json:"name"`
	Priority   int            `koanf:"priority" json:"priority" validate:"min=0"`
	Conditions []rawPredicate `koanf:"conditions" json:"conditions" validate:"required,min=1,dive"`
	AvoidIf    []string       `koanf:"avoid_if" json:"avoid_if"`
	Actions    rawActions     `koanf:"actions" json:"actions"`
	Escalation *rawEscalation `koanf:"escalation" json:"escalation"`
}

type rawPredicate struct {
	Kind   string   `koanf:"kind" json:"kind" validate:"required"`
	Field  string   `koanf:"field" json:"field" validate:"required"`
	Values []string `koanf:"values" json:"values"`
	Min    *float64 `koanf:"min" json:"min"`
	Max    *float64 `koanf:"max" json:"max"`
}

type rawActions struct {
	ProductIDs  []string            `koanf:"product_ids" json:"product_ids"`
	ProductTags []string            `koanf:"product_tags" json:"product_tags"`
	Routines    map[string]string   `koanf:"routines" json:"routines"`
	Diet        map[string][]string `koanf:"diet" json:"diet"`
	Warnings    []string            `koanf:"warnings" json:"warnings"`
}

type rawEscalation struct {
	Level   string `koanf:"level" json:"level" validate:"required"`
	Message string `koanf:"message" json:"message"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func ruleValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Load reads, parses, and validates the rule file.
func (s *FileSource) Load(_ context.Context) ([]Rule, error) {
	var rf rawRuleFile

	switch ext := strings.ToLower(filepath.Ext(s.Path)); ext {
	case ".yaml", ".yml":
		k := koanf.New(".")
		if err := k.Load(file.Provider(s.Path), yaml.Parser()); err != nil {
			return nil, &ConfigError{Reason: "read rule file", Err: err}
		}
		if err := k.Unmarshal("", &rf); err != nil {
			return nil, &ConfigError{Reason: "decode rule file", Err: err}
		}
	case ".json":
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, &ConfigError{Reason: "read rule file", Err: err}
		}
		if err := json.Unmarshal(data, &rf); err != nil {
			return nil, &ConfigError{Reason: "decode rule file", Err: err}
		}
	default:
		return nil, configErrorf("", "", "unsupported rule file extension %q", ext)
	}

	if err := ruleValidator().Struct(&rf); err != nil {
		return nil, &ConfigError{Reason: "rule file failed validation", Err: err}
	}

	rules, err := convertRules(rf.Rules)
	if err != nil {
		return nil, err
	}
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// convertRules maps raw file rules onto the closed internal types. Unknown
// predicate or escalation kinds become load-time ConfigErrors here, so
// evaluation only ever sees exhaustively-matchable variants.
func convertRules(raw []rawRule) ([]Rule, error) {
	rules := make([]Rule, 0, len(raw))

	for i := range raw {
		r := &raw[i]

		conditions := make([]Predicate, 0, len(r.Conditions))
		for j := range r.Conditions {
			p, err := convertPredicate(r.ID, &r.Conditions[j])
			if err != nil {
				return nil, err
			}
			conditions = append(conditions, p)
		}

		rule := Rule{
			ID:         r.ID,
			Name:       r.Name,
			Priority:   r.Priority,
			Conditions: conditions,
			AvoidIf:    r.AvoidIf,
			Actions: Actions{
				ProductIDs:  r.Actions.ProductIDs,
				ProductTags: r.Actions.ProductTags,
				Routines:    r.Actions.Routines,
				Diet:        r.Actions.Diet,
				Warnings:    r.Actions.Warnings,
			},
		}

		if r.Escalation != nil {
			level, err := ParseSeverity(r.Escalation.Level)
			if err != nil {
				return nil, &ConfigError{RuleID: r.ID, Field: "escalation.level", Err: err}
			}
			rule.Escalation = &RuleEscalation{
				Level:   level,
				Message: r.Escalation.Message,
			}
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

func convertPredicate(ruleID string, raw *rawPredicate) (Predicate, error) {
	kind, err := ParsePredicateKind(raw.Kind)
	if err != nil {
		return Predicate{}, &ConfigError{RuleID: ruleID, Field: "conditions.kind", Err: err}
	}

	p := Predicate{Kind: kind, Field: strings.ToLower(raw.Field), Values: raw.Values}

	switch kind {
	case PredicateEqualsOneOf, PredicateContainsAll:
		if len(raw.Values) == 0 {
			return Predicate{}, configErrorf(ruleID, "conditions.values",
				"%s predicate requires at least one value", kind)
		}
	case PredicateInRange:
		if raw.Min == nil || raw.Max == nil {
			return Predicate{}, configErrorf(ruleID, "conditions",
				"in_range predicate requires both min and max")
		}
		p.Min = *raw.Min
		p.Max = *raw.Max
	}

	return p, nil
}

// ValidateRules checks structural invariants that hold across a whole set:
// unique non-empty IDs, well-formed predicates, sane ranges. Returns a
// *ConfigError on the first violation.
func ValidateRules(rules []Rule) error {
	seen := make(map[string]struct{}, len(rules))

	for i := range rules {
		r := &rules[i]
		if r.ID == "" {
			return configErrorf("", "id", "rule at index %d has no id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return configErrorf(r.ID, "id", "duplicate rule id")
		}
		seen[r.ID] = struct{}{}

		if len(r.Conditions) == 0 {
			return configErrorf(r.ID, "conditions", "rule has no conditions")
		}
		for _, p := range r.Conditions {
			if err := validatePredicate(r.ID, p); err != nil {
				return err
			}
		}

		if r.Escalation != nil {
			if r.Escalation.Level < SeverityNone || r.Escalation.Level > SeverityEmergency {
				return configErrorf(r.ID, "escalation.level",
					"severity out of range: %d", int(r.Escalation.Level))
			}
		}
	}

	return nil
}

func validatePredicate(ruleID string, p Predicate) error {
	if p.Field == "" {
		return configErrorf(ruleID, "conditions.field", "predicate has no field")
	}
	switch p.Kind {
	case PredicateEqualsOneOf, PredicateContainsAll:
		if len(p.Values) == 0 {
			return configErrorf(ruleID, "conditions.values",
				"%s predicate requires at least one value", p.Kind)
		}
	case PredicateInRange:
		if p.Min > p.Max {
			return configErrorf(ruleID, "conditions",
				"in_range predicate has min %v > max %v", p.Min, p.Max)
		}
	default:
		return configErrorf(ruleID, "conditions.kind",
			"unknown predicate kind %d", int(p.Kind))
	}
	return nil
}

// sortCanonical orders rules by (priority asc, id asc), the canonical
// evaluation and escalation-precedence order, independent of source order.
func sortCanonical(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].ID < rules[j].ID
	})
}
