// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

// Package escalation resolves detected condition keys into medical
// escalation advice through a static catalog.
//
// This path is independent of rule-declared escalations: the catalog covers
// conditions like "infection" or "suspicious_mole" that warrant professional
// attention regardless of which care rules matched. Combining a catalog
// result with a bundle's rule escalation is the API layer's responsibility;
// both expose the same severity order.
package escalation

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Priyansh0418/Haski-sub003/internal/rules"
)

// Record is the catalog entry for one condition key.
type Record struct {
	Severity      rules.Severity `json:"severity"`
	Urgency       string         `json:"urgency"`
	MedicalAdvice string         `json:"medical_advice"`
	NextSteps     []string       `json:"next_steps"`
}

// Catalog maps condition keys to escalation records. Loaded once and
// read-only afterwards; insertion order is preserved for deterministic
// tie-breaks between equal severities.
type Catalog struct {
	entries map[string]Record
	order   []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Record)}
}

// Add registers a record for a condition key. Re-adding a key overwrites
// the record but keeps its original position.
func (c *Catalog) Add(condition string, rec Record) {
	if _, exists := c.entries[condition]; !exists {
		c.order = append(c.order, condition)
	}
	c.entries[condition] = rec
}

// Get returns the record for a condition key.
func (c *Catalog) Get(condition string) (Record, bool) {
	rec, ok := c.entries[condition]
	return rec, ok
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Keys returns condition keys in insertion order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

// CatalogSource supplies a complete escalation catalog.
type CatalogSource interface {
	Load(ctx context.Context) (*Catalog, error)
}

// StaticCatalogSource serves an already-built catalog.
type StaticCatalogSource struct {
	Catalog *Catalog
}

// Load returns the static catalog.
func (s *StaticCatalogSource) Load(_ context.Context) (*Catalog, error) {
	return s.Catalog, nil
}

// FileCatalogSource loads a catalog from a YAML file of the shape:
//
//	conditions:
//	  - key: infection
//	    severity: urgent
//	    urgency: within_24_hours
//	    medical_advice: Signs of infection require prompt medical evaluation.
//	    next_steps: [see_doctor]
type FileCatalogSource struct {
	Path string
}

type rawCatalogFile struct {
	Conditions []rawCatalogEntry `koanf:"conditions"`
}

type rawCatalogEntry struct {
	Key           string   `koanf:"key"`
	Severity      string   `koanf:"severity"`
	Urgency       string   `koanf:"urgency"`
	MedicalAdvice string   `koanf:"medical_advice"`
	NextSteps     []string `koanf:"next_steps"`
}

// Load reads and validates the catalog file. Unknown severities and
// duplicate keys are load-time errors.
func (s *FileCatalogSource) Load(_ context.Context) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(s.Path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("read escalation catalog: %w", err)
	}

	var rf rawCatalogFile
	if err := k.Unmarshal("", &rf); err != nil {
		return nil, fmt.Errorf("decode escalation catalog: %w", err)
	}

	catalog := NewCatalog()
	for _, entry := range rf.Conditions {
		if entry.Key == "" {
			return nil, fmt.Errorf("escalation catalog entry has no key")
		}
		if _, dup := catalog.Get(entry.Key); dup {
			return nil, fmt.Errorf("duplicate escalation catalog key %q", entry.Key)
		}
		severity, err := rules.ParseSeverity(entry.Severity)
		if err != nil {
			return nil, fmt.Errorf("escalation catalog key %q: %w", entry.Key, err)
		}
		catalog.Add(entry.Key, Record{
			Severity:      severity,
			Urgency:       entry.Urgency,
			MedicalAdvice: entry.MedicalAdvice,
			NextSteps:     entry.NextSteps,
		})
	}

	return catalog, nil
}

// DefaultCatalog returns the built-in catalog covering conditions that
// always warrant medical attention, whatever the active rule set says.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.Add("infection", Record{
		Severity:      rules.SeverityUrgent,
		Urgency:       "within_24_hours",
		MedicalAdvice: "Signs of skin infection require prompt medical evaluation.",
		NextSteps:     []string{"see_doctor", "avoid_topical_products"},
	})
	c.Add("suspicious_mole", Record{
		Severity:      rules.SeverityUrgent,
		Urgency:       "within_week",
		MedicalAdvice: "A changing or irregular mole should be examined by a dermatologist.",
		NextSteps:     []string{"see_dermatologist", "photograph_for_tracking"},
	})
	c.Add("severe_cystic_acne", Record{
		Severity:      rules.SeverityCaution,
		Urgency:       "within_month",
		MedicalAdvice: "Severe cystic acne responds poorly to over-the-counter care; prescription treatment is usually needed.",
		NextSteps:     []string{"see_dermatologist"},
	})
	c.Add("severe_hair_loss", Record{
		Severity:      rules.SeverityCaution,
		Urgency:       "within_month",
		MedicalAdvice: "Rapid or patchy hair loss can indicate an underlying condition worth investigating.",
		NextSteps:     []string{"see_doctor", "blood_panel"},
	})
	c.Add("open_wound", Record{
		Severity:      rules.SeverityEmergency,
		Urgency:       "immediate",
		MedicalAdvice: "Open or bleeding lesions need immediate medical care.",
		NextSteps:     []string{"seek_immediate_care"},
	})
	return c
}
