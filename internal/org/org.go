package org

import "fmt"

// Role identifies one of the simulated organization's job families.
// The set is closed: every profile, headcount and loss-tier table is
// validated for completeness against AllRoles at startup.
type Role string

const (
	RoleCLevel        Role = "C_Level"
	RoleAnalyst       Role = "Analyst"
	RoleTrader        Role = "Trader"
	RoleITAdmin       Role = "IT_Admin"
	RoleExecAssistant Role = "Exec_Assistant"
	RoleContractor    Role = "Contractor"
)

// AllRoles fixes the iteration order for every per-role loop. Keeping the
// order stable is what makes seeded runs reproduce draw-for-draw.
var AllRoles = []Role{
	RoleCLevel,
	RoleAnalyst,
	RoleTrader,
	RoleITAdmin,
	RoleExecAssistant,
	RoleContractor,
}

// Region is the coarse geography a user is assigned to.
type Region string

const (
	RegionNA   Region = "NA"
	RegionEU   Region = "EU"
	RegionAPAC Region = "APAC"
)

var AllRegions = []Region{RegionNA, RegionEU, RegionAPAC}

// User is one simulated seat. Created once at population-build time and
// never mutated afterwards.
type User struct {
	ID                string
	Role              Role
	Region            Region
	Conscientiousness float64
	Neuroticism       float64
}

// DefaultHeadcounts is the reference organization: 1009 seats.
var DefaultHeadcounts = map[Role]int{
	RoleCLevel:        9,
	RoleAnalyst:       700,
	RoleTrader:        100,
	RoleITAdmin:       50,
	RoleExecAssistant: 20,
	RoleContractor:    130,
}

// ValidateHeadcounts rejects tables that omit a configured role or carry a
// negative seat count. A zero count is allowed; downstream rate aggregation
// yields a defined zero for empty roles.
func ValidateHeadcounts(headcounts map[Role]int) error {
	for _, role := range AllRoles {
		count, ok := headcounts[role]
		if !ok {
			return fmt.Errorf("headcount table is missing role %q", role)
		}
		if count < 0 {
			return fmt.Errorf("headcount for role %q is negative (%d)", role, count)
		}
	}
	return nil
}
