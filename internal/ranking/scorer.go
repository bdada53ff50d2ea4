// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package ranking

import (
	"fmt"
	"strings"
)

// Scoring constants. The sub-score weights are fixed product decisions, not
// trained parameters.
const (
	// allergyPenalty multiplies the composite score when the product has at
	// least one flagged allergen concern.
	allergyPenalty = 0.9

	// safetyBaseApproved / safetyBaseUnapproved anchor the dermatological
	// safety sub-score.
	safetyBaseApproved   = 100.0
	safetyBaseUnapproved = 40.0

	// safetyOverlapBonus is granted per condition the product targets,
	// capped at safetyOverlapCap.
	safetyOverlapBonus = 10.0
	safetyOverlapCap   = 20.0

	// safetyAvoidPenalty applies when the product's avoid-for list overlaps
	// the user's conditions.
	safetyAvoidPenalty = 20.0

	// reviewSaturation is the review count past which the volume term's
	// growth visibly diminishes.
	reviewSaturation = 50.0

	// qualityAbsent is the quality sub-score when a product has neither
	// ratings nor reviews.
	qualityAbsent = 5.0

	// feedbackNeutral is the feedback sub-score when no stats exist.
	feedbackNeutral = 50.0
)

// Weights are the relative contributions of the four sub-scores.
type Weights struct {
	Safety         float64 `koanf:"safety" json:"safety" validate:"min=0"`
	Quality        float64 `koanf:"quality" json:"quality" validate:"min=0"`
	Feedback       float64 `koanf:"feedback" json:"feedback" validate:"min=0"`
	ConditionMatch float64 `koanf:"condition_match" json:"condition_match" validate:"min=0"`
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{
		Safety:         0.25,
		Quality:        0.30,
		Feedback:       0.20,
		ConditionMatch: 0.25,
	}
}

// Normalize returns a copy with weights scaled to sum to 1.0.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Normalize() Weights {
	sum := w.Safety + w.Quality + w.Feedback + w.ConditionMatch
	if sum == 0 {
		return DefaultWeights()
	}
	return Weights{
		Safety:         w.Safety / sum,
		Quality:        w.Quality / sum,
		Feedback:       w.Feedback / sum,
		ConditionMatch: w.ConditionMatch / sum,
	}
}

// Scorer computes composite product scores. Pure and stateless: safe for
// concurrent use, never mutates its inputs.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer with the given (unnormalized) weights.
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights.Normalize()}
}

// Score computes the composite score and explanation for one product.
// stats may be nil (neutral feedback); safetyIssues comes from the allergy
// filter and triggers the fixed penalty multiplier. The result is clamped
// to [0, 100] before and after the multiplier.
func (s *Scorer) Score(p *Product, user *UserContext, stats *FeedbackStats, safetyIssues []string) (float64, []string) {
	var reasons []string

	userConditions := normalizeTokens(user.Conditions)

	safety := s.safetyScore(p, userConditions)
	quality := s.qualityScore(p)
	feedback := s.feedbackScore(stats)
	condition, matchedAll := s.conditionScore(p, userConditions)

	if safety >= 100 {
		reasons = append(reasons, "Dermatologically tested and approved")
	}
	if matchedAll && len(p.RecommendedFor) > 0 {
		reasons = append(reasons, "Recommended for: "+strings.Join(p.RecommendedFor, ", "))
	}
	if quality >= 80 {
		reasons = append(reasons, "Highly rated by users")
	}
	if stats != nil && feedback >= 70 {
		reasons = append(reasons, "Positive feedback from other users")
	}

	composite := clampScore(
		safety*s.weights.Safety +
			quality*s.weights.Quality +
			feedback*s.weights.Feedback +
			condition*s.weights.ConditionMatch,
	)

	if len(safetyIssues) > 0 {
		composite = clampScore(composite * allergyPenalty)
		reasons = append(reasons, fmt.Sprintf("Contains %d allergen concern(s) for your profile", len(safetyIssues)))
	}

	return composite, reasons
}

// safetyScore rates dermatological safety for this user.
func (s *Scorer) safetyScore(p *Product, userConditions map[string]struct{}) float64 {
	score := safetyBaseUnapproved
	if p.DermatologicallySafe {
		score = safetyBaseApproved
	}

	if overlap := overlapCount(p.RecommendedFor, userConditions); overlap > 0 {
		bonus := safetyOverlapBonus * float64(overlap)
		if bonus > safetyOverlapCap {
			bonus = safetyOverlapCap
		}
		score += bonus
	}

	if overlapCount(p.AvoidFor, userConditions) > 0 {
		score -= safetyAvoidPenalty
	}

	return clampScore(score)
}

// qualityScore rates the product's market quality from its rating and a
// saturating review-volume term. Volume follows n/(n+50): half-saturated at
// 50 reviews, diminishing steadily past it.
func (s *Scorer) qualityScore(p *Product) float64 {
	if p.Rating <= 0 && p.ReviewCount <= 0 {
		return qualityAbsent
	}

	ratingTerm := clampScore(p.Rating / 5.0 * 100.0)
	n := float64(p.ReviewCount)
	volumeTerm := 100.0 * n / (n + reviewSaturation)

	return clampScore(0.67*ratingTerm + 0.33*volumeTerm)
}

// feedbackScore rates historical feedback; absent stats are neutral.
func (s *Scorer) feedbackScore(stats *FeedbackStats) float64 {
	if stats == nil {
		return feedbackNeutral
	}

	score := stats.AvgRating / 5.0 * 70.0
	if stats.TotalFeedback > 0 {
		score += float64(stats.HelpfulCount) / float64(stats.TotalFeedback) * 30.0
	}
	return clampScore(score)
}

// conditionScore rates how closely the product targets the user's
// conditions. The boolean reports whether every user condition is covered,
// which drives the "Recommended for" reason.
func (s *Scorer) conditionScore(p *Product, userConditions map[string]struct{}) (float64, bool) {
	if len(p.RecommendedFor) == 0 {
		return 40.0, false
	}
	total := len(userConditions)
	if total == 0 {
		return 60.0, false
	}

	recommendedSet := normalizeTokens(p.RecommendedFor)
	matched := 0
	for cond := range userConditions {
		if _, ok := recommendedSet[cond]; ok {
			matched++
		}
	}

	switch {
	case matched == total:
		return 100.0, true
	case matched == 0:
		return 30.0, false
	default:
		return 60.0 + 30.0*float64(matched)/float64(total), false
	}
}

// clampScore bounds a score to [0, 100].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
