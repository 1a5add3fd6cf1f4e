package aggregator

import (
	"fmt"
	"math"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
)

// WeightTolerance is how far a weight vector's sum may drift from 1.0.
const WeightTolerance = 0.001

// ValidateWeights checks that weights cover all four categories, are
// non-negative, and sum to 1.0 within tolerance.
func ValidateWeights(weights map[domain.Category]float64) error {
	sum := 0.0
	for _, category := range domain.Categories {
		w, ok := weights[category]
		if !ok {
			return fmt.Errorf("missing weight for category %s", category)
		}
		if w < 0 {
			return fmt.Errorf("weight for category %s must be non-negative, got %f", category, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %f", sum)
	}
	return nil
}

// CategoryScore is the mean progress over every signpost in the category.
// Signposts with no qualifying evidence contribute 0 rather than being
// excluded: absence of progress is itself informative and must not be hidden
// by averaging over fewer signposts.
func CategoryScore(progress []float64) float64 {
	if len(progress) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range progress {
		sum += p
	}
	return sum / float64(len(progress))
}

// Overall combines the four category scores with a weighted harmonic mean:
// 1 / Σ(w_i / s_i). With equal weights this is 4 / Σ(1/s_i). If any category
// score is exactly 0 the overall is defined as 0. The harmonic mean is the
// load-bearing design choice: the overall index can never exceed roughly
// (1/w_min) times the weakest category, so rapid capability gains cannot be
// reported as high proximity while security readiness sits near zero.
func Overall(scores, weights map[domain.Category]float64) float64 {
	denom := 0.0
	for _, category := range domain.Categories {
		s := scores[category]
		if s == 0 {
			return 0
		}
		denom += weights[category] / s
	}
	if denom == 0 {
		return 0
	}
	return 1 / denom
}

// SignpostProgress maps a link's impact estimate onto the signpost's
// baseline-to-target scale, returning the progress fraction clamped to [0,1]
// and the implied current value.
func SignpostProgress(signpost *domain.Signpost, impactEstimate float64) (fraction, current float64) {
	fraction = impactEstimate
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	current = signpost.Baseline + fraction*(signpost.Target-signpost.Baseline)
	return fraction, current
}
