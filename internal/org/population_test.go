package org

import (
	"testing"

	"golang.org/x/exp/rand"
)

func TestBuildPopulation_Headcounts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	users, err := BuildPopulation(DefaultHeadcounts, rng)
	if err != nil {
		t.Fatalf("BuildPopulation failed: %v", err)
	}

	total := 0
	byRole := make(map[Role]int)
	for _, u := range users {
		byRole[u.Role]++
		total++
	}

	for _, role := range AllRoles {
		if byRole[role] != DefaultHeadcounts[role] {
			t.Errorf("Expected %d users for role %s, got %d", DefaultHeadcounts[role], role, byRole[role])
		}
	}
	if total != 1009 {
		t.Errorf("Expected 1009 users total, got %d", total)
	}
}

func TestBuildPopulation_TraitBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	users, err := BuildPopulation(DefaultHeadcounts, rng)
	if err != nil {
		t.Fatalf("BuildPopulation failed: %v", err)
	}

	regions := make(map[Region]bool)
	for _, r := range AllRegions {
		regions[r] = true
	}

	for _, u := range users {
		if u.Conscientiousness < 0 || u.Conscientiousness > 100 {
			t.Fatalf("User %s: conscientiousness %f outside [0,100]", u.ID, u.Conscientiousness)
		}
		if u.Neuroticism < 0 || u.Neuroticism > 100 {
			t.Fatalf("User %s: neuroticism %f outside [0,100]", u.ID, u.Neuroticism)
		}
		if !regions[u.Region] {
			t.Fatalf("User %s: unknown region %q", u.ID, u.Region)
		}
		if len(u.ID) != 11 || u.ID[:3] != "BB-" {
			t.Fatalf("User ID %q does not match BB-xxxxxxxx format", u.ID)
		}
	}
}

func TestBuildPopulation_Deterministic(t *testing.T) {
	a, err := BuildPopulation(DefaultHeadcounts, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	b, err := BuildPopulation(DefaultHeadcounts, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("Population sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("User %d differs between identically seeded builds: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestValidateHeadcounts_MissingRole(t *testing.T) {
	incomplete := map[Role]int{RoleCLevel: 9}
	if err := ValidateHeadcounts(incomplete); err == nil {
		t.Error("Expected error for incomplete headcount table, got nil")
	}
}

func TestValidateHeadcounts_ZeroAllowed(t *testing.T) {
	counts := make(map[Role]int)
	for _, role := range AllRoles {
		counts[role] = 0
	}
	if err := ValidateHeadcounts(counts); err != nil {
		t.Errorf("Expected zero headcounts to be valid, got %v", err)
	}
}
