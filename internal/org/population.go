package org

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// traitDist holds the per-role psychometric sampling parameters:
// conscientiousness captures rule-following, neuroticism stress reactivity.
type traitDist struct {
	ConsMean, ConsStd float64
	NeurMean, NeurStd float64
}

// traitsByRole encodes the reference personas: C-Level is disciplined and
// calm, traders are stress-sensitive, contractors spread widest.
var traitsByRole = map[Role]traitDist{
	RoleCLevel:        {ConsMean: 80, ConsStd: 5, NeurMean: 40, NeurStd: 6},
	RoleTrader:        {ConsMean: 60, ConsStd: 8, NeurMean: 60, NeurStd: 10},
	RoleITAdmin:       {ConsMean: 70, ConsStd: 6, NeurMean: 45, NeurStd: 8},
	RoleAnalyst:       {ConsMean: 62, ConsStd: 7, NeurMean: 55, NeurStd: 9},
	RoleContractor:    {ConsMean: 50, ConsStd: 10, NeurMean: 52, NeurStd: 10},
	RoleExecAssistant: {ConsMean: 75, ConsStd: 5, NeurMean: 50, NeurStd: 7},
}

// defaultTraitDist is the fallback for roles without a tuned persona.
var defaultTraitDist = traitDist{ConsMean: 60, ConsStd: 10, NeurMean: 55, NeurStd: 10}

// BuildPopulation produces one User per configured seat. Trait draws, region
// choice and identity all consume the injected rng, so a fixed seed
// reproduces the population exactly.
func BuildPopulation(headcounts map[Role]int, rng *rand.Rand) ([]User, error) {
	if err := ValidateHeadcounts(headcounts); err != nil {
		return nil, err
	}

	total := 0
	for _, role := range AllRoles {
		total += headcounts[role]
	}

	users := make([]User, 0, total)
	for _, role := range AllRoles {
		for i := 0; i < headcounts[role]; i++ {
			id, err := newUserID(rng)
			if err != nil {
				return nil, fmt.Errorf("failed to mint user id: %w", err)
			}
			cons, neur := sampleTraits(role, rng)
			users = append(users, User{
				ID:                id,
				Role:              role,
				Region:            AllRegions[rng.Intn(len(AllRegions))],
				Conscientiousness: cons,
				Neuroticism:       neur,
			})
		}
	}
	return users, nil
}

// newUserID mints the reference "BB-" + 8 hex chars token. Drawing the uuid
// bytes from the injected rng keeps identity generation deterministic.
func newUserID(rng *rand.Rand) (string, error) {
	u, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BB-%x", u[:4]), nil
}

func sampleTraits(role Role, rng *rand.Rand) (conscientiousness, neuroticism float64) {
	dist, ok := traitsByRole[role]
	if !ok {
		dist = defaultTraitDist
	}

	cons := distuv.Normal{Mu: dist.ConsMean, Sigma: dist.ConsStd, Src: rng}.Rand()
	neur := distuv.Normal{Mu: dist.NeurMean, Sigma: dist.NeurStd, Src: rng}.Rand()
	return clipScore(cons), clipScore(neur)
}

// clipScore bounds a trait score into [0,100].
func clipScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
