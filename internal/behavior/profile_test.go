package behavior

import (
	"testing"

	"bbrisk/internal/org"
)

func TestValidateProfiles_DefaultsComplete(t *testing.T) {
	if err := ValidateProfiles(); err != nil {
		t.Fatalf("Default profile table failed validation: %v", err)
	}
}

func TestValidateProfiles_CoversAllRoles(t *testing.T) {
	for _, role := range org.AllRoles {
		if _, err := ProfileFor(role); err != nil {
			t.Errorf("Role %s has no profile: %v", role, err)
		}
	}
}

func TestProfileFor_UnknownRole(t *testing.T) {
	if _, err := ProfileFor(org.Role("Intern")); err == nil {
		t.Error("Expected error for unconfigured role, got nil")
	}
}

func TestProfiles_SpikesCoverOpportunityFeatures(t *testing.T) {
	// Injected days must remain visible to the opportunity scorer: every
	// weighted feature needs a spike range.
	for _, role := range org.AllRoles {
		p := Profiles[role]
		for f := Feature(0); f < NumFeatures; f++ {
			if p.Weights[f] > 0 && p.Spikes[f].Max == 0 {
				t.Errorf("Role %s: feature %s is weighted but never spiked", role, f)
			}
		}
	}
}
