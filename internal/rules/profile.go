// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package rules

import "strings"

// SkinType is the closed enum of skin classifications.
// A profile carries exactly one value.
type SkinType string

const (
	SkinNormal      SkinType = "normal"
	SkinOily        SkinType = "oily"
	SkinDry         SkinType = "dry"
	SkinCombination SkinType = "combination"
	SkinSensitive   SkinType = "sensitive"
)

// HairType is the closed enum of hair classifications.
// A profile carries exactly one value.
type HairType string

const (
	HairStraight HairType = "straight"
	HairWavy     HairType = "wavy"
	HairCurly    HairType = "curly"
	HairCoily    HairType = "coily"
)

// Profile is the user-declared portion of the evaluation input.
type Profile struct {
	UserID   string   `json:"user_id"`
	SkinType SkinType `json:"skin_type"`
	HairType HairType `json:"hair_type"`
	Age      int      `json:"age,omitempty"`

	// Pregnant and Breastfeeding activate the corresponding
	// contraindication keys.
	Pregnant      bool `json:"pregnancy_status,omitempty"`
	Breastfeeding bool `json:"breastfeeding,omitempty"`

	// Allergies are normalized to lowercase at evaluation time.
	Allergies []string `json:"allergies,omitempty"`

	// Contraindications lists additional active contraindication keys
	// (e.g. "retinoid_therapy") beyond the built-in pregnancy flags.
	Contraindications []string `json:"contraindications,omitempty"`
}

// ActiveContraindications returns the set of contraindication keys that are
// currently true for this profile, matched against rule avoid_if lists.
func (p *Profile) ActiveContraindications() map[string]struct{} {
	active := make(map[string]struct{}, len(p.Contraindications)+2)
	if p.Pregnant {
		active["pregnancy"] = struct{}{}
	}
	if p.Breastfeeding {
		active["breastfeeding"] = struct{}{}
	}
	for _, key := range p.Contraindications {
		active[strings.ToLower(strings.TrimSpace(key))] = struct{}{}
	}
	return active
}

// Analysis is the detected portion of the evaluation input, produced by the
// upstream image classification layer.
type Analysis struct {
	// Conditions are detected condition keys (e.g. "acne", "blackheads").
	Conditions []string `json:"conditions_detected"`

	// Metrics carries numeric analysis outputs (e.g. "oiliness_score")
	// usable by in_range predicates.
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

// factKind discriminates the value shapes a predicate can reference.
type factKind int

const (
	factScalar factKind = iota
	factSet
	factNumber
)

type factValue struct {
	kind factKind
	str  string
	num  float64
	set  map[string]struct{}
}

// Facts is the read-only merged view of profile and analysis fields that
// predicates evaluate against. Built fresh per evaluation.
type Facts struct {
	values map[string]factValue
}

// mergeFacts flattens a profile and analysis into the predicate fact view.
// All string values are lowercased so matching is case-insensitive.
func mergeFacts(profile *Profile, analysis *Analysis) *Facts {
	f := &Facts{values: make(map[string]factValue, 8)}

	if profile != nil {
		f.putScalar("skin_type", string(profile.SkinType))
		f.putScalar("hair_type", string(profile.HairType))
		f.putScalar("pregnancy_status", boolFact(profile.Pregnant))
		f.putScalar("breastfeeding", boolFact(profile.Breastfeeding))
		if profile.Age > 0 {
			f.putNumber("age", float64(profile.Age))
		}
		f.putSet("allergies", profile.Allergies)
	}

	if analysis != nil {
		f.putSet("conditions_detected", analysis.Conditions)
		for name, value := range analysis.Metrics {
			f.putNumber(strings.ToLower(name), value)
		}
	}

	return f
}

func boolFact(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (f *Facts) putScalar(field, value string) {
	if value == "" {
		return
	}
	f.values[field] = factValue{kind: factScalar, str: strings.ToLower(value)}
}

func (f *Facts) putNumber(field string, value float64) {
	f.values[field] = factValue{kind: factNumber, num: value}
}

func (f *Facts) putSet(field string, values []string) {
	if len(values) == 0 {
		return
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	f.values[field] = factValue{kind: factSet, set: set}
}
