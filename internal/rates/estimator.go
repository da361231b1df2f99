// Package rates turns a generated activity dataset into empirical annual
// incident probabilities: the fraction of distinct users in a role (or
// role x region cell) with at least one malicious day over the horizon.
package rates

import (
	"bbrisk/internal/dataset"
	"bbrisk/internal/org"
)

// Table is the estimator output. Every configured role and every
// role x region cell is present, zero-filled when a group had no users or no
// incidents; consumers never see a missing or undefined rate.
type Table struct {
	ByRole       map[org.Role]float64                `json:"by_role"`
	ByRoleRegion map[org.Role]map[org.Region]float64 `json:"by_role_region"`
	UsersByRole  map[org.Role]int                    `json:"users_by_role"`
}

type userAgg struct {
	role     org.Role
	region   org.Region
	incident bool
}

// Estimate groups the records by user, reduces each user to a binary
// had-an-incident indicator, and averages the indicator per role and per
// role x region cell.
func Estimate(records []dataset.Record) Table {
	users := make(map[string]*userAgg)
	for _, r := range records {
		agg, ok := users[r.UserID]
		if !ok {
			agg = &userAgg{role: r.Role, region: r.Region}
			users[r.UserID] = agg
		}
		if r.Malicious {
			agg.incident = true
		}
	}

	type cell struct{ users, incidents int }
	roleCells := make(map[org.Role]*cell)
	regionCells := make(map[org.Role]map[org.Region]*cell)
	for _, role := range org.AllRoles {
		roleCells[role] = &cell{}
		regionCells[role] = make(map[org.Region]*cell)
		for _, region := range org.AllRegions {
			regionCells[role][region] = &cell{}
		}
	}

	for _, agg := range users {
		rc, ok := roleCells[agg.role]
		if !ok {
			// Unknown role in the file: not part of the configured
			// organization, so it cannot enter the rate table.
			continue
		}
		rc.users++
		if agg.incident {
			rc.incidents++
		}
		if cc, ok := regionCells[agg.role][agg.region]; ok {
			cc.users++
			if agg.incident {
				cc.incidents++
			}
		}
	}

	t := Table{
		ByRole:       make(map[org.Role]float64, len(org.AllRoles)),
		ByRoleRegion: make(map[org.Role]map[org.Region]float64, len(org.AllRoles)),
		UsersByRole:  make(map[org.Role]int, len(org.AllRoles)),
	}
	for _, role := range org.AllRoles {
		rc := roleCells[role]
		t.ByRole[role] = ratio(rc.incidents, rc.users)
		t.UsersByRole[role] = rc.users
		t.ByRoleRegion[role] = make(map[org.Region]float64, len(org.AllRegions))
		for _, region := range org.AllRegions {
			cc := regionCells[role][region]
			t.ByRoleRegion[role][region] = ratio(cc.incidents, cc.users)
		}
	}
	return t
}

// ratio is the defined-zero division: empty groups yield 0, never NaN.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
