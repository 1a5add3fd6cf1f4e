package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
)

func equalWeights() map[domain.Category]float64 {
	return map[domain.Category]float64{
		domain.CategoryCapabilities: 0.25,
		domain.CategoryAgents:       0.25,
		domain.CategoryInputs:       0.25,
		domain.CategorySecurity:     0.25,
	}
}

func TestValidateWeights(t *testing.T) {
	assert.NoError(t, ValidateWeights(equalWeights()))

	w := equalWeights()
	w[domain.CategorySecurity] = 0.5
	assert.Error(t, ValidateWeights(w), "sum above 1.0 must fail")

	w = equalWeights()
	delete(w, domain.CategoryInputs)
	assert.Error(t, ValidateWeights(w), "missing category must fail")

	w = equalWeights()
	w[domain.CategoryAgents] = -0.25
	w[domain.CategoryCapabilities] = 0.75
	assert.Error(t, ValidateWeights(w), "negative weight must fail")

	// Within tolerance.
	w = equalWeights()
	w[domain.CategorySecurity] = 0.2505
	w[domain.CategoryCapabilities] = 0.25
	w[domain.CategoryAgents] = 0.25
	w[domain.CategoryInputs] = 0.249
	assert.NoError(t, ValidateWeights(w))
}

func TestCategoryScore_CountsEvidencelessSignpostsAsZero(t *testing.T) {
	// Three signposts, one with evidence: absence of progress drags the mean.
	assert.InDelta(t, 0.2, CategoryScore([]float64{0.6, 0, 0}), 1e-9)
	assert.Equal(t, 0.0, CategoryScore(nil))
	assert.InDelta(t, 0.5, CategoryScore([]float64{0.5}), 1e-9)
}

func TestOverall_SpecScenario(t *testing.T) {
	scores := map[domain.Category]float64{
		domain.CategoryCapabilities: 0.8,
		domain.CategoryAgents:       0.6,
		domain.CategoryInputs:       0.5,
		domain.CategorySecurity:     0.05,
	}

	// 4 / (1/0.8 + 1/0.6 + 1/0.5 + 1/0.05) ≈ 0.166: the weak security score
	// dominates despite strong capabilities.
	overall := Overall(scores, equalWeights())
	assert.InDelta(t, 0.166, overall, 0.001)
}

func TestOverall_ZeroCategoryIsZero(t *testing.T) {
	scores := map[domain.Category]float64{
		domain.CategoryCapabilities: 0.9,
		domain.CategoryAgents:       0.9,
		domain.CategoryInputs:       0.9,
		domain.CategorySecurity:     0,
	}
	assert.Equal(t, 0.0, Overall(scores, equalWeights()))
}

func TestOverall_BoundedByMinCategory(t *testing.T) {
	vectors := [][4]float64{
		{0.8, 0.6, 0.5, 0.05},
		{1, 1, 1, 0.01},
		{0.3, 0.3, 0.3, 0.3},
		{0.99, 0.01, 0.5, 0.7},
	}

	for _, v := range vectors {
		scores := map[domain.Category]float64{
			domain.CategoryCapabilities: v[0],
			domain.CategoryAgents:       v[1],
			domain.CategoryInputs:       v[2],
			domain.CategorySecurity:     v[3],
		}
		min := v[0]
		for _, s := range v {
			if s < min {
				min = s
			}
		}

		overall := Overall(scores, equalWeights())
		assert.LessOrEqual(t, overall, 4*min+1e-9, "vector %v", v)
	}
}

func TestOverall_EqualScoresIsIdentity(t *testing.T) {
	scores := map[domain.Category]float64{
		domain.CategoryCapabilities: 0.4,
		domain.CategoryAgents:       0.4,
		domain.CategoryInputs:       0.4,
		domain.CategorySecurity:     0.4,
	}
	assert.InDelta(t, 0.4, Overall(scores, equalWeights()), 1e-9)
}

func TestSignpostProgress(t *testing.T) {
	signpost := &domain.Signpost{Baseline: 20, Target: 80}

	fraction, current := SignpostProgress(signpost, 0.5)
	assert.InDelta(t, 0.5, fraction, 1e-9)
	assert.InDelta(t, 50, current, 1e-9)

	// Clamped at both ends.
	fraction, current = SignpostProgress(signpost, 1.4)
	assert.Equal(t, 1.0, fraction)
	assert.InDelta(t, 80, current, 1e-9)

	fraction, current = SignpostProgress(signpost, -0.2)
	assert.Equal(t, 0.0, fraction)
	assert.InDelta(t, 20, current, 1e-9)
}

func TestSignpostProgress_InvertedScale(t *testing.T) {
	// Metrics where lower is better, e.g. error rates.
	signpost := &domain.Signpost{Baseline: 40, Target: 5}

	fraction, current := SignpostProgress(signpost, 0.5)
	assert.InDelta(t, 0.5, fraction, 1e-9)
	assert.InDelta(t, 22.5, current, 1e-9)
}
