package simulation

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"bbrisk/internal/org"
)

// Loss-tier labels of the reference table.
const (
	TierCLevel      = "C-Level Executives"
	TierTeamLeads   = "Team Leads"
	TierEmployees   = "Employees (full-time)"
	TierContractors = "Contractors / Temporary Staff"
)

// roleTiers translates simulation roles into loss-tier labels.
var roleTiers = map[org.Role]string{
	org.RoleCLevel:        TierCLevel,
	org.RoleTrader:        TierTeamLeads,
	org.RoleITAdmin:       TierTeamLeads,
	org.RoleAnalyst:       TierEmployees,
	org.RoleExecAssistant: TierEmployees,
	org.RoleContractor:    TierContractors,
}

// TierFor resolves a role's loss tier. The mapping is closed; an unmapped
// role is a configuration error the caller must treat as fatal.
func TierFor(role org.Role) (string, error) {
	tier, ok := roleTiers[role]
	if !ok {
		return "", fmt.Errorf("role %q has no loss-tier mapping", role)
	}
	return tier, nil
}

// LossRange bounds the USD loss of a single successful attack.
type LossRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// LossTable maps a loss-tier label to its USD range.
type LossTable map[string]LossRange

// LoadLossRanges reads the reference CSV (Level, Min Loss (USD),
// Max Loss (USD)). The table is loaded once before any Monte Carlo run; any
// defect here is fatal configuration, not something to paper over
// mid-simulation.
func LoadLossRanges(path string) (LossTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open loss ranges: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read loss ranges: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("loss ranges %s has no data rows", path)
	}

	wantHeader := []string{"Level", "Min Loss (USD)", "Max Loss (USD)"}
	for i, col := range rows[0] {
		if i >= len(wantHeader) || strings.TrimSpace(col) != wantHeader[i] {
			return nil, fmt.Errorf("unexpected loss-range column %d: %q", i, col)
		}
	}

	table := make(LossTable, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 3 {
			return nil, fmt.Errorf("loss-range row %d is truncated", i+2)
		}
		level := strings.TrimSpace(row[0])
		min, err := parseUSD(row[1])
		if err != nil {
			return nil, fmt.Errorf("loss-range row %d: bad min: %w", i+2, err)
		}
		max, err := parseUSD(row[2])
		if err != nil {
			return nil, fmt.Errorf("loss-range row %d: bad max: %w", i+2, err)
		}
		table[level] = LossRange{Min: min, Max: max}
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks the table is usable by the engine: every mapped tier is
// present and every range supports the lognormal parameterization
// (positive bounds in log space).
func (t LossTable) Validate() error {
	for _, role := range org.AllRoles {
		tier, err := TierFor(role)
		if err != nil {
			return err
		}
		lr, ok := t[tier]
		if !ok {
			return fmt.Errorf("loss table is missing tier %q (needed by role %q)", tier, role)
		}
		if lr.Min <= 0 {
			return fmt.Errorf("tier %q: min loss must be positive, got %g", tier, lr.Min)
		}
		if lr.Max < lr.Min {
			return fmt.Errorf("tier %q: max loss %g below min loss %g", tier, lr.Max, lr.Min)
		}
	}
	return nil
}

// parseUSD tolerates thousands separators and a leading dollar sign.
func parseUSD(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}
