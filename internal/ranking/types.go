// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package ranking

import (
	"context"
	"strings"
)

// Product is a catalog candidate. Read-only to this package; the catalog
// layer owns the data.
type Product struct {
	// ID is the catalog identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Brand is the manufacturer.
	Brand string `json:"brand,omitempty"`

	// Ingredients lists ingredient tokens.
	Ingredients []string `json:"ingredients,omitempty"`

	// Tags are catalog classification tags (e.g. "acne-care").
	Tags []string `json:"tags,omitempty"`

	// AvoidFor lists conditions or sensitivities the product is unsuitable for.
	AvoidFor []string `json:"avoid_for,omitempty"`

	// RecommendedFor lists conditions the product targets.
	RecommendedFor []string `json:"recommended_for,omitempty"`

	// DermatologicallySafe indicates dermatological testing approval.
	DermatologicallySafe bool `json:"dermatologically_safe"`

	// Rating is the average user rating on a 0-5 scale.
	Rating float64 `json:"rating,omitempty"`

	// ReviewCount is the number of ratings behind Rating.
	ReviewCount int `json:"review_count,omitempty"`
}

// UserContext is the per-request safety profile the ranking pipeline
// evaluates against. Built fresh per request.
type UserContext struct {
	UserID string `json:"user_id"`

	// Allergies are the user's allergen tokens; matching is
	// case-insensitive.
	Allergies []string `json:"allergies,omitempty"`

	SkinType string `json:"skin_type,omitempty"`
	HairType string `json:"hair_type,omitempty"`

	// Conditions are the user's detected/declared condition keys.
	Conditions []string `json:"conditions,omitempty"`
}

// FeedbackStats summarizes historical feedback for one product, resolved by
// the FeedbackStatsProvider collaborator before scoring begins.
type FeedbackStats struct {
	AvgRating     float64 `json:"avg_rating"` // 0-5 scale
	TotalFeedback int     `json:"total_feedback"`
	HelpfulCount  int     `json:"helpful_count"`
}

// RankedProduct is one ordered result with its explanation.
type RankedProduct struct {
	Product Product `json:"product"`

	// Score is the composite score in [0, 100].
	Score float64 `json:"score"`

	// Rank is 1-based within the returned list.
	Rank int `json:"rank"`

	// Reasons are human-readable scoring explanations.
	Reasons []string `json:"reasons"`

	// SafetyIssues are allergen flags from the safety filter; empty when
	// the product is clean for this user.
	SafetyIssues []string `json:"safety_issues"`
}

// ProductCatalog resolves bundle product references into candidates.
// Implemented by the persistence layer.
type ProductCatalog interface {
	LookupByIDs(ctx context.Context, ids []string) ([]Product, error)
	LookupByTags(ctx context.Context, tags []string) ([]Product, error)
}

// FeedbackStatsProvider supplies historical feedback for scoring. A nil
// result degrades the feedback sub-score to neutral.
type FeedbackStatsProvider interface {
	StatsFor(ctx context.Context, productID, userID string) (*FeedbackStats, error)
}

// normalizeTokens lowercases and trims a token list into a set.
func normalizeTokens(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

// overlapCount returns how many members of list are present in set
// (case-insensitive).
func overlapCount(list []string, set map[string]struct{}) int {
	n := 0
	for _, item := range list {
		if _, ok := set[strings.ToLower(strings.TrimSpace(item))]; ok {
			n++
		}
	}
	return n
}
