package behavior

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SampleDay draws one day of activity counters for a user of the profile's
// role. Each counter is an independent Normal draw around the role baseline,
// rounded and floored at zero. Days carry no state across each other.
func SampleDay(p Profile, rng *rand.Rand) FeatureVector {
	var fv FeatureVector
	for f := Feature(0); f < NumFeatures; f++ {
		draw := distuv.Normal{Mu: p.Mean[f], Sigma: p.Std[f], Src: rng}.Rand()
		fv[f] = nonNegativeCount(draw)
	}
	return fv
}

// nonNegativeCount rounds a sampled value to the nearest integer and floors
// it at zero. Normal draws can go negative; observable counts never do.
func nonNegativeCount(x float64) int {
	n := int(math.Round(x))
	if n < 0 {
		return 0
	}
	return n
}

// maxOpportunity caps the opportunity signal so it stays a small, bounded
// contribution to the decision probability, never dominant.
const maxOpportunity = 5.0

// OpportunityScore measures how anomalous a day's pre-injection behavior is
// relative to the role baseline. Only deviations beyond 2 sigma count:
// routine variance must not register as opportunity.
func OpportunityScore(p Profile, fv FeatureVector) float64 {
	score := 0.0
	for f := Feature(0); f < NumFeatures; f++ {
		w := p.Weights[f]
		if w == 0 || p.Std[f] <= 0 {
			continue
		}
		z := (float64(fv[f]) - p.Mean[f]) / p.Std[f]
		spike := z - 2.0
		if spike > 0 {
			score += w * spike
		}
	}
	return math.Min(score, maxOpportunity)
}
