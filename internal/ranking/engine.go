// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Priyansh0418/Haski-sub003/internal/metrics"
	"github.com/Priyansh0418/Haski-sub003/internal/rules"
)

// Engine orchestrates the filter -> score -> sort -> top-k pipeline.
// It is safe for concurrent use.
type Engine struct {
	config  *Config
	scorer  *Scorer
	logger  zerolog.Logger
	catalog ProductCatalog
	stats   FeedbackStatsProvider
}

// NewEngine creates a ranking engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		scorer: NewScorer(cfg.Weights),
		logger: logger.With().Str("component", "ranking").Logger(),
	}, nil
}

// SetCatalog sets the product catalog used by RankForBundle.
func (e *Engine) SetCatalog(catalog ProductCatalog) {
	e.catalog = catalog
}

// SetFeedbackProvider sets the optional feedback stats provider used by
// RankForBundle. Without one, scoring uses the neutral feedback sub-score.
func (e *Engine) SetFeedbackProvider(provider FeedbackStatsProvider) {
	e.stats = provider
}

// Request is one ranking request over an already-resolved candidate list.
type Request struct {
	// Products are the candidates. Never mutated.
	Products []Product

	// User is the safety profile to rank for.
	User UserContext

	// K is the number of results to return; K <= 0 uses the configured
	// default, and K above the configured maximum is capped.
	K int

	// IncludeAllergenWarnings keeps allergen-flagged products in the
	// result (annotated and penalized) instead of removing them.
	IncludeAllergenWarnings bool

	// Stats carries pre-resolved feedback stats per product ID. Optional.
	Stats map[string]*FeedbackStats

	// RequestID is a unique identifier for tracing. Generated if empty.
	RequestID string
}

// Rank filters, scores, orders, and truncates the candidates. Pure with
// respect to its inputs; an empty candidate list yields an empty result.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Rank(req Request) []RankedProduct {
	start := time.Now()
	metrics.RankingRequests.Inc()

	req = e.prepareRequest(req)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.User.UserID).
		Logger()

	if len(req.Products) == 0 {
		logger.Debug().Msg("no candidates to rank")
		return []RankedProduct{}
	}

	strict := !req.IncludeAllergenWarnings
	safe, issues := FilterAllergens(req.Products, req.User.Allergies, strict)

	ranked := e.scoreCandidates(safe, &req.User, req.Stats, issues)

	// Stable sort preserves score-computation order for equal scores, so
	// rankings are deterministic.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > req.K {
		ranked = ranked[:req.K]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	metrics.RankingDuration.Observe(time.Since(start).Seconds())
	logger.Debug().
		Int("candidates", len(req.Products)).
		Int("returned", len(ranked)).
		Bool("strict", strict).
		Msg("ranking complete")

	return ranked
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.K <= 0 {
		req.K = e.config.Limits.DefaultK
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}
	return req
}

// scoreCandidates scores each candidate exactly once, de-duplicating by
// product ID (first occurrence wins).
func (e *Engine) scoreCandidates(products []Product, user *UserContext, stats map[string]*FeedbackStats, issues map[string][]string) []RankedProduct {
	ranked := make([]RankedProduct, 0, len(products))
	seen := make(map[string]struct{}, len(products))

	for i := range products {
		p := products[i]
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}

		productIssues := issues[p.ID]
		score, reasons := e.scorer.Score(&p, user, stats[p.ID], productIssues)
		metrics.ProductsScored.Inc()

		if productIssues == nil {
			productIssues = []string{}
		}
		if reasons == nil {
			reasons = []string{}
		}
		ranked = append(ranked, RankedProduct{
			Product:      p,
			Score:        score,
			Reasons:      reasons,
			SafetyIssues: productIssues,
		})
	}

	return ranked
}

// RankForBundle resolves a rule-engine bundle's product references through
// the catalog, pre-fetches feedback stats, and ranks the result. Candidates
// referenced both by ID and by tag are considered once.
func (e *Engine) RankForBundle(ctx context.Context, bundle *rules.Bundle, user UserContext, k int) ([]RankedProduct, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("product catalog not set")
	}
	if bundle == nil {
		return []RankedProduct{}, nil
	}

	var candidates []Product

	if len(bundle.ProductIDs) > 0 {
		byID, err := e.catalog.LookupByIDs(ctx, bundle.ProductIDs)
		if err != nil {
			return nil, fmt.Errorf("lookup products by id: %w", err)
		}
		candidates = append(candidates, byID...)
	}
	if len(bundle.ProductTags) > 0 {
		byTag, err := e.catalog.LookupByTags(ctx, bundle.ProductTags)
		if err != nil {
			return nil, fmt.Errorf("lookup products by tag: %w", err)
		}
		candidates = append(candidates, byTag...)
	}

	stats := e.fetchStats(ctx, candidates, user.UserID)

	return e.Rank(Request{
		Products:                candidates,
		User:                    user,
		K:                       k,
		IncludeAllergenWarnings: true,
		Stats:                   stats,
	}), nil
}

// fetchStats resolves feedback stats for each distinct candidate before
// scoring begins; provider errors degrade that product to neutral feedback.
func (e *Engine) fetchStats(ctx context.Context, candidates []Product, userID string) map[string]*FeedbackStats {
	if e.stats == nil || len(candidates) == 0 {
		return nil
	}

	stats := make(map[string]*FeedbackStats, len(candidates))
	for i := range candidates {
		id := candidates[i].ID
		if _, done := stats[id]; done {
			continue
		}
		s, err := e.stats.StatsFor(ctx, id, userID)
		if err != nil {
			e.logger.Warn().Err(err).Str("product_id", id).Msg("feedback stats lookup failed")
			continue
		}
		stats[id] = s
	}
	return stats
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}
