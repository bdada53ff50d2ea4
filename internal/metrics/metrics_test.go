// Haski - Skin & Hair Condition Analysis and Care Recommendations
// Copyright 2026 Priyansh (Priyansh0418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Priyansh0418/Haski-sub003

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(RuleEvaluations)
	RuleEvaluations.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RuleEvaluations))
}

func TestVecLabels(t *testing.T) {
	before := testutil.ToFloat64(RulesSkipped.WithLabelValues("contraindicated"))
	RulesSkipped.WithLabelValues("contraindicated").Inc()
	RulesSkipped.WithLabelValues("no_match").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RulesSkipped.WithLabelValues("contraindicated")))
}

func TestGaugeSet(t *testing.T) {
	ActiveRules.Set(12)
	assert.Equal(t, 12.0, testutil.ToFloat64(ActiveRules))
	ActiveRules.Set(0)
}
