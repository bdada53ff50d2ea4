// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package ranking

import (
	"strings"

	"github.com/Priyansh0418/Haski-sub003/internal/metrics"
)

// FilterAllergens checks every product's ingredients, tags, and avoid-for
// list against the user's allergens (case-insensitive) and returns the
// surviving products plus a per-product issue list.
//
// In strict mode any product with at least one issue is removed from the
// safe list. In warn mode (strict=false) every input product survives and
// issues are only recorded for downstream display and score penalties; warn
// mode never removes a product.
func FilterAllergens(products []Product, allergies []string, strict bool) ([]Product, map[string][]string) {
	issues := make(map[string][]string)
	safe := make([]Product, 0, len(products))

	allergySet := normalizeTokens(allergies)
	if len(allergySet) == 0 {
		safe = append(safe, products...)
		return safe, issues
	}

	for _, p := range products {
		productIssues := allergenIssues(&p, allergySet)
		if len(productIssues) > 0 {
			issues[p.ID] = productIssues
			if strict {
				metrics.ProductsFiltered.Inc()
				continue
			}
		}
		safe = append(safe, p)
	}

	return safe, issues
}

// allergenIssues returns de-duplicated issue strings for one product, in
// field order: ingredients, tags, avoid-for.
func allergenIssues(p *Product, allergySet map[string]struct{}) []string {
	var found []string
	seen := make(map[string]struct{})

	add := func(issue, metricField string) {
		if _, dup := seen[issue]; dup {
			return
		}
		seen[issue] = struct{}{}
		found = append(found, issue)
		metrics.AllergenFlags.WithLabelValues(metricField).Inc()
	}

	for _, ing := range p.Ingredients {
		if tok := strings.ToLower(strings.TrimSpace(ing)); tokenMatches(tok, allergySet) {
			add("Ingredient: "+tok, "ingredient")
		}
	}
	for _, tag := range p.Tags {
		if tok := strings.ToLower(strings.TrimSpace(tag)); tokenMatches(tok, allergySet) {
			add("Tagged: "+tok, "tag")
		}
	}
	for _, avoid := range p.AvoidFor {
		if tok := strings.ToLower(strings.TrimSpace(avoid)); tokenMatches(tok, allergySet) {
			add("Avoid-for: "+tok, "avoid_for")
		}
	}

	return found
}

func tokenMatches(token string, allergySet map[string]struct{}) bool {
	_, ok := allergySet[token]
	return ok
}
