package behavior

import (
	"golang.org/x/exp/rand"
)

const (
	// probCeiling is the hard daily cap on the malicious probability.
	// Insider-incident base rates are very low in practice; no combination
	// of stress and opportunity may push a single day past 0.05%.
	probCeiling = 0.0005

	stressWeight      = 0.000003
	opportunityWeight = 0.00001

	neuroticismHigh      = 65.0
	conscientiousnessLow = 50.0
)

// Traits is the pair of psychometric scores the decision rule reads.
type Traits struct {
	Conscientiousness float64
	Neuroticism       float64
}

// StressFactor counts the active stressors: high stress reactivity, an HR
// event today, and low rule-following. Integer in [0,3].
func StressFactor(tr Traits, hrFlagged bool) int {
	stress := 0
	if tr.Neuroticism > neuroticismHigh {
		stress++
	}
	if hrFlagged {
		stress++
	}
	if tr.Conscientiousness < conscientiousnessLow {
		stress++
	}
	return stress
}

// MaliciousProbability combines the role base rate, the stress factor and
// the day's opportunity score. The terms are summed first and the sum is
// clamped once into [0, probCeiling]; the ceiling holds however extreme the
// inputs are. Given the same pre-injection counters, traits and HR flag the
// result is fully reproducible.
func MaliciousProbability(p Profile, fv FeatureVector, tr Traits, hrFlagged bool) float64 {
	prob := p.BaseProb +
		stressWeight*float64(StressFactor(tr, hrFlagged)) +
		opportunityWeight*OpportunityScore(p, fv)

	if prob < 0 {
		return 0
	}
	if prob > probCeiling {
		return probCeiling
	}
	return prob
}

// DrawHRFlag fires the role's rare daily HR stressor event.
func DrawHRFlag(p Profile, rng *rand.Rand) bool {
	return rng.Float64() < p.HRFlagRate
}

// Decide flips the weighted coin for the day. On a malicious day the role's
// spike ranges are added to the counters, so the injected anomaly is visible
// in the finalized record; the decision itself was made on the pre-injection
// vector. Returns the label and the (possibly mutated) vector.
func Decide(p Profile, fv FeatureVector, tr Traits, hrFlagged bool, rng *rand.Rand) (bool, FeatureVector) {
	prob := MaliciousProbability(p, fv, tr, hrFlagged)
	if rng.Float64() >= prob {
		return false, fv
	}

	for f := Feature(0); f < NumFeatures; f++ {
		sp := p.Spikes[f]
		if sp.Max == 0 {
			continue
		}
		fv[f] += sp.Min + rng.Intn(sp.Max-sp.Min+1)
	}
	return true, fv
}
