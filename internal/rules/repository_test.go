// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package rules

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingSource implements Source and always errors.
type failingSource struct {
	err error
}

func (s *failingSource) Load(_ context.Context) ([]Rule, error) {
	return nil, s.err
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(zerolog.Nop())
}

func TestRepositoryStartsEmpty(t *testing.T) {
	repo := newTestRepository(t)

	assert.Empty(t, repo.Rules())
	assert.Equal(t, int64(0), repo.Version())

	bundle := repo.Evaluate(&Profile{SkinType: SkinOily}, &Analysis{Conditions: []string{"acne"}})
	assert.Empty(t, bundle.AppliedRuleIDs)
}

func TestRepositoryReload(t *testing.T) {
	repo := newTestRepository(t)

	src := &StaticSource{Rules: []Rule{blackheadsRule(), oilySkinAcneRule()}}
	require.NoError(t, repo.Reload(context.Background(), src))

	assert.Equal(t, int64(1), repo.Version())

	// Active set is in canonical order regardless of source order.
	got := repo.Rules()
	require.Len(t, got, 2)
	assert.Equal(t, "r001", got[0].ID)
	assert.Equal(t, "r007", got[1].ID)
}

func TestRepositoryReloadFailureKeepsPreviousSet(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, repo.Reload(context.Background(), &StaticSource{Rules: []Rule{oilySkinAcneRule()}}))

	boom := errors.New("source unavailable")
	err := repo.Reload(context.Background(), &failingSource{err: boom})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, int64(1), repo.Version())
	require.Len(t, repo.Rules(), 1)
	assert.Equal(t, "r001", repo.Rules()[0].ID)
}

func TestRepositoryReloadRejectsDuplicateIDs(t *testing.T) {
	repo := newTestRepository(t)

	dup := oilySkinAcneRule()
	err := repo.Reload(context.Background(), &StaticSource{Rules: []Rule{oilySkinAcneRule(), dup}})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "r001", cfgErr.RuleID)
	assert.Equal(t, int64(0), repo.Version())
}

func TestRepositoryEvaluateUsesSnapshot(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, repo.Reload(context.Background(), &StaticSource{Rules: []Rule{oilySkinAcneRule()}}))

	profile := &Profile{SkinType: SkinOily}
	analysis := &Analysis{Conditions: []string{"acne", "blackheads"}}

	bundle := repo.Evaluate(profile, analysis)
	assert.Equal(t, []string{"r001"}, bundle.AppliedRuleIDs)

	require.NoError(t, repo.Reload(context.Background(), &StaticSource{Rules: []Rule{blackheadsRule()}}))
	bundle = repo.Evaluate(profile, analysis)
	assert.Equal(t, []string{"r007"}, bundle.AppliedRuleIDs)
}

func TestRepositoryConcurrentEvaluateAndReload(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, repo.Reload(context.Background(), &StaticSource{Rules: []Rule{oilySkinAcneRule()}}))

	profile := &Profile{SkinType: SkinOily}
	analysis := &Analysis{Conditions: []string{"acne", "blackheads"}}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Readers: every evaluation must see a complete set (either one rule
	// applied or the other, never a torn state).
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				bundle := repo.Evaluate(profile, analysis)
				if len(bundle.AppliedRuleIDs) != 1 {
					t.Errorf("torn rule set observed: %v", bundle.AppliedRuleIDs)
					return
				}
			}
		}()
	}

	// Writer: alternate between two single-rule sets.
	sets := []*StaticSource{
		{Rules: []Rule{oilySkinAcneRule()}},
		{Rules: []Rule{blackheadsRule()}},
	}
	for i := 0; i < 200; i++ {
		require.NoError(t, repo.Reload(context.Background(), sets[i%2]))
	}

	close(stop)
	wg.Wait()

	assert.Equal(t, int64(201), repo.Version())
}

func TestRepositoryEvaluateWithTrace(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, repo.Reload(context.Background(), &StaticSource{
		Rules: []Rule{oilySkinAcneRule(), blackheadsRule()},
	}))

	_, trace := repo.EvaluateWithTrace(&Profile{SkinType: SkinDry}, &Analysis{Conditions: []string{"blackheads"}})

	require.Len(t, trace, 2)
	assert.Equal(t, "r001", trace[0].RuleID)
	assert.Equal(t, SkippedNoMatch, trace[0].SkippedReason)
	assert.True(t, trace[1].Matched)
}
