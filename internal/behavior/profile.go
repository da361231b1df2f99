package behavior

import (
	"fmt"

	"bbrisk/internal/org"
)

// SpikeRange is the additive integer spike a feature receives on a malicious
// day. A zero-valued range means the feature is never spiked for the role.
type SpikeRange struct {
	Min, Max int
}

// Profile holds the immutable per-role behavioral configuration. Instances
// live in the Profiles table and are never mutated at runtime.
type Profile struct {
	Role org.Role

	// Mean and Std parameterize the per-day Normal draw of each counter.
	Mean FeatureStats
	Std  FeatureStats

	// Weights score super-2-sigma deviations into the opportunity signal.
	// Zero weight means the feature is not scored for the role.
	Weights FeatureStats

	// BaseProb is the role's malicious-day base rate. Daily rates are tuned
	// extremely low so that annual incident rates land in the 0.8-3% range
	// over a 240-day horizon.
	BaseProb float64

	// HRFlagRate is the daily chance of an HR stressor event.
	HRFlagRate float64

	// Spikes are applied to the day's counters when the day is malicious.
	// The spiked feature set covers the role's opportunity features so that
	// injected days remain visible to the scorer.
	Spikes [NumFeatures]SpikeRange
}

// Profiles is the closed role-profile table. Constants reproduce the
// reference organization's hand-tuned baselines.
var Profiles = map[org.Role]Profile{
	org.RoleCLevel: {
		Role: org.RoleCLevel,
		Mean: FeatureStats{
			AfterHoursLogons:      2.5,
			SensitiveFileReads:    50,
			USBDeviceMounts:       0.02,
			ExternalEmailsSent:    20,
			EmailsWithAttachments: 10,
			CloudUploadEvents:     0.1,
			FailedLogins:          0.3,
			FilesDeleted:          0.5,
			HTTPCompetitorVisits:  2.0,
		},
		Std: FeatureStats{
			AfterHoursLogons:      1.0,
			SensitiveFileReads:    8,
			USBDeviceMounts:       0.3,
			ExternalEmailsSent:    5,
			EmailsWithAttachments: 3,
			CloudUploadEvents:     0.3,
			FailedLogins:          0.5,
			FilesDeleted:          1,
			HTTPCompetitorVisits:  1.0,
		},
		Weights: FeatureStats{
			SensitiveFileReads: 2.5,
			ExternalEmailsSent: 2.0,
			CloudUploadEvents:  1.5,
			AfterHoursLogons:   1.0,
		},
		BaseProb:   0.00005,
		HRFlagRate: 0.0001,
		Spikes: [NumFeatures]SpikeRange{
			SensitiveFileReads: {100, 200},
			ExternalEmailsSent: {30, 50},
			CloudUploadEvents:  {5, 10},
			AfterHoursLogons:   {5, 10},
		},
	},
	org.RoleTrader: {
		Role: org.RoleTrader,
		Mean: FeatureStats{
			AfterHoursLogons:      1.5,
			SensitiveFileReads:    30,
			USBDeviceMounts:       0.05,
			ExternalEmailsSent:    4,
			EmailsWithAttachments: 2,
			CloudUploadEvents:     0.05,
			FailedLogins:          0.5,
			FilesDeleted:          1,
			HTTPCompetitorVisits:  1.5,
		},
		Std: FeatureStats{
			AfterHoursLogons:      0.8,
			SensitiveFileReads:    5,
			USBDeviceMounts:       0.5,
			ExternalEmailsSent:    2,
			EmailsWithAttachments: 1.5,
			CloudUploadEvents:     0.5,
			FailedLogins:          0.7,
			FilesDeleted:          2,
			HTTPCompetitorVisits:  0.8,
		},
		Weights: FeatureStats{
			CloudUploadEvents:  2.0,
			SensitiveFileReads: 1.5,
			AfterHoursLogons:   1.0,
			ExternalEmailsSent: 1.0,
		},
		BaseProb:   0.00010,
		HRFlagRate: 0.001,
		Spikes: [NumFeatures]SpikeRange{
			CloudUploadEvents:  {3, 6},
			SensitiveFileReads: {20, 40},
			AfterHoursLogons:   {2, 4},
			ExternalEmailsSent: {5, 10},
		},
	},
	org.RoleITAdmin: {
		Role: org.RoleITAdmin,
		Mean: FeatureStats{
			AfterHoursLogons:      2.0,
			SensitiveFileReads:    15,
			USBDeviceMounts:       0.2,
			ExternalEmailsSent:    1,
			EmailsWithAttachments: 0.5,
			CloudUploadEvents:     0.05,
			FailedLogins:          1.0,
			FilesDeleted:          5,
			HTTPCompetitorVisits:  0.5,
		},
		Std: FeatureStats{
			AfterHoursLogons:      0.8,
			SensitiveFileReads:    5,
			USBDeviceMounts:       0.5,
			ExternalEmailsSent:    2,
			EmailsWithAttachments: 1.5,
			CloudUploadEvents:     0.5,
			FailedLogins:          0.7,
			FilesDeleted:          2,
			HTTPCompetitorVisits:  0.8,
		},
		Weights: FeatureStats{
			AfterHoursLogons:   2.0,
			SensitiveFileReads: 1.5,
			FilesDeleted:       1.5,
			USBDeviceMounts:    1.2,
		},
		BaseProb:   0.00015,
		HRFlagRate: 0.0015,
		Spikes: [NumFeatures]SpikeRange{
			AfterHoursLogons:   {3, 6},
			SensitiveFileReads: {40, 80},
			USBDeviceMounts:    {1, 3},
			FilesDeleted:       {20, 50},
		},
	},
	org.RoleAnalyst: {
		Role: org.RoleAnalyst,
		Mean: FeatureStats{
			AfterHoursLogons:      0.7,
			SensitiveFileReads:    20,
			USBDeviceMounts:       0.05,
			ExternalEmailsSent:    6,
			EmailsWithAttachments: 3,
			CloudUploadEvents:     0.1,
			FailedLogins:          0.7,
			FilesDeleted:          1,
			HTTPCompetitorVisits:  1.0,
		},
		Std: FeatureStats{
			AfterHoursLogons:      0.8,
			SensitiveFileReads:    5,
			USBDeviceMounts:       0.5,
			ExternalEmailsSent:    2,
			EmailsWithAttachments: 1.5,
			CloudUploadEvents:     0.5,
			FailedLogins:          0.7,
			FilesDeleted:          2,
			HTTPCompetitorVisits:  0.8,
		},
		Weights: FeatureStats{
			EmailsWithAttachments: 2.0,
			ExternalEmailsSent:    1.5,
			SensitiveFileReads:    1.0,
		},
		BaseProb:   0.00008,
		HRFlagRate: 0.001,
		Spikes: [NumFeatures]SpikeRange{
			ExternalEmailsSent:    {5, 10},
			EmailsWithAttachments: {5, 10},
			SensitiveFileReads:    {15, 30},
		},
	},
	org.RoleContractor: {
		Role: org.RoleContractor,
		Mean: FeatureStats{
			AfterHoursLogons:      0.4,
			SensitiveFileReads:    10,
			USBDeviceMounts:       0.4,
			ExternalEmailsSent:    2,
			EmailsWithAttachments: 1,
			CloudUploadEvents:     0.15,
			FailedLogins:          1.2,
			FilesDeleted:          1,
			HTTPCompetitorVisits:  0.5,
		},
		Std: FeatureStats{
			AfterHoursLogons:      0.8,
			SensitiveFileReads:    5,
			USBDeviceMounts:       0.5,
			ExternalEmailsSent:    2,
			EmailsWithAttachments: 1.5,
			CloudUploadEvents:     0.5,
			FailedLogins:          0.7,
			FilesDeleted:          2,
			HTTPCompetitorVisits:  0.8,
		},
		Weights: FeatureStats{
			USBDeviceMounts:    2.0,
			SensitiveFileReads: 1.5,
			CloudUploadEvents:  1.2,
		},
		BaseProb:   0.00020,
		HRFlagRate: 0.002,
		Spikes: [NumFeatures]SpikeRange{
			USBDeviceMounts:    {2, 5},
			SensitiveFileReads: {30, 60},
			CloudUploadEvents:  {1, 3},
		},
	},
	org.RoleExecAssistant: {
		Role: org.RoleExecAssistant,
		Mean: FeatureStats{
			AfterHoursLogons:      0.5,
			SensitiveFileReads:    5,
			USBDeviceMounts:       0.05,
			ExternalEmailsSent:    15,
			EmailsWithAttachments: 5,
			CloudUploadEvents:     0.05,
			FailedLogins:          0.4,
			FilesDeleted:          0.5,
			HTTPCompetitorVisits:  0.2,
		},
		Std: FeatureStats{
			AfterHoursLogons:      0.8,
			SensitiveFileReads:    5,
			USBDeviceMounts:       0.5,
			ExternalEmailsSent:    2,
			EmailsWithAttachments: 1.5,
			CloudUploadEvents:     0.5,
			FailedLogins:          0.7,
			FilesDeleted:          2,
			HTTPCompetitorVisits:  0.8,
		},
		Weights: FeatureStats{
			EmailsWithAttachments: 2.0,
			ExternalEmailsSent:    1.5,
			SensitiveFileReads:    1.0,
		},
		BaseProb:   0.00010,
		HRFlagRate: 0.0005,
		Spikes: [NumFeatures]SpikeRange{
			ExternalEmailsSent:    {8, 15},
			EmailsWithAttachments: {8, 15},
			SensitiveFileReads:    {10, 20},
		},
	},
}

// ProfileFor resolves a role's profile. A missing profile is a configuration
// error: simulation must not proceed on silently defaulted baselines.
func ProfileFor(role org.Role) (Profile, error) {
	p, ok := Profiles[role]
	if !ok {
		return Profile{}, fmt.Errorf("no behavior profile configured for role %q", role)
	}
	return p, nil
}

// ValidateProfiles checks the profile table for completeness against the
// closed role set. It runs once at startup and rejects any gap that would
// otherwise corrupt risk estimates mid-simulation.
func ValidateProfiles() error {
	for _, role := range org.AllRoles {
		p, ok := Profiles[role]
		if !ok {
			return fmt.Errorf("role %q has no behavior profile", role)
		}
		if p.Role != role {
			return fmt.Errorf("profile for role %q is keyed under %q", p.Role, role)
		}
		if p.BaseProb <= 0 || p.BaseProb > probCeiling {
			return fmt.Errorf("role %q: base probability %g outside (0, %g]", role, p.BaseProb, probCeiling)
		}
		if p.HRFlagRate < 0 || p.HRFlagRate > 1 {
			return fmt.Errorf("role %q: HR flag rate %g outside [0,1]", role, p.HRFlagRate)
		}
		for f := Feature(0); f < NumFeatures; f++ {
			if p.Std[f] <= 0 {
				return fmt.Errorf("role %q: feature %s has non-positive std %g", role, f, p.Std[f])
			}
			if p.Mean[f] < 0 {
				return fmt.Errorf("role %q: feature %s has negative mean %g", role, f, p.Mean[f])
			}
			if p.Weights[f] < 0 {
				return fmt.Errorf("role %q: feature %s has negative opportunity weight %g", role, f, p.Weights[f])
			}
			sp := p.Spikes[f]
			if sp.Min < 0 || sp.Max < sp.Min {
				return fmt.Errorf("role %q: feature %s has invalid spike range [%d,%d]", role, f, sp.Min, sp.Max)
			}
			// Spiked features must cover the scored ones, otherwise injected
			// days would be invisible to the opportunity signal.
			if p.Weights[f] > 0 && sp.Max == 0 {
				return fmt.Errorf("role %q: feature %s is opportunity-weighted but has no spike range", role, f)
			}
		}
	}
	return nil
}
