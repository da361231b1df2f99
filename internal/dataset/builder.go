package dataset

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"bbrisk/internal/behavior"
	"bbrisk/internal/org"
)

// Record is one finalized (user, day) observation. Generated once during
// dataset construction and never mutated afterwards.
type Record struct {
	UserID            string
	Role              org.Role
	Region            org.Region
	Date              string // YYYY-MM-DD
	Features          behavior.FeatureVector
	HRFlagged         bool
	Conscientiousness float64
	Neuroticism       float64
	Malicious         bool
}

// BuildConfig fixes the simulation horizon.
type BuildConfig struct {
	Start time.Time
	Days  int
}

// Build orchestrates sampling, opportunity scoring and the malicious-day
// decision across the whole population and horizon. Iteration is user-major,
// day-minor (all days for one user before the next), which pins the rng
// consumption order: the same seed and configuration reproduce the dataset
// exactly.
func Build(users []org.User, cfg BuildConfig, rng *rand.Rand) ([]Record, error) {
	if cfg.Days <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d days", cfg.Days)
	}

	records := make([]Record, 0, len(users)*cfg.Days)
	for _, u := range users {
		profile, err := behavior.ProfileFor(u.Role)
		if err != nil {
			return nil, err
		}
		traits := behavior.Traits{
			Conscientiousness: u.Conscientiousness,
			Neuroticism:       u.Neuroticism,
		}

		for offset := 0; offset < cfg.Days; offset++ {
			day := cfg.Start.AddDate(0, 0, offset)

			fv := behavior.SampleDay(profile, rng)
			hrFlagged := behavior.DrawHRFlag(profile, rng)
			malicious, fv := behavior.Decide(profile, fv, traits, hrFlagged, rng)

			records = append(records, Record{
				UserID:            u.ID,
				Role:              u.Role,
				Region:            u.Region,
				Date:              day.Format("2006-01-02"),
				Features:          fv,
				HRFlagged:         hrFlagged,
				Conscientiousness: u.Conscientiousness,
				Neuroticism:       u.Neuroticism,
				Malicious:         malicious,
			})
		}
	}
	return records, nil
}

// CountMalicious reports how many records in the set are labeled malicious.
func CountMalicious(records []Record) int {
	n := 0
	for _, r := range records {
		if r.Malicious {
			n++
		}
	}
	return n
}
