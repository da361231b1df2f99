package simulation

import (
	"reflect"
	"testing"

	"bbrisk/internal/org"
)

func testLossTable() LossTable {
	return LossTable{
		TierCLevel:      {Min: 250000, Max: 5000000},
		TierTeamLeads:   {Min: 50000, Max: 1000000},
		TierEmployees:   {Min: 10000, Max: 500000},
		TierContractors: {Min: 25000, Max: 750000},
	}
}

func fullHeadcounts(overrides map[org.Role]int) map[org.Role]int {
	m := make(map[org.Role]int, len(org.AllRoles))
	for _, role := range org.AllRoles {
		m[role] = 0
	}
	for role, v := range overrides {
		m[role] = v
	}
	return m
}

func fullRates(overrides map[org.Role]float64) map[org.Role]float64 {
	m := make(map[org.Role]float64, len(org.AllRoles))
	for _, role := range org.AllRoles {
		m[role] = 0
	}
	for role, v := range overrides {
		m[role] = v
	}
	return m
}

func TestEngine_FullMitigationZeroLoss(t *testing.T) {
	e, err := NewEngine(
		fullRates(map[org.Role]float64{org.RoleAnalyst: 0.05, org.RoleContractor: 0.08}),
		fullHeadcounts(map[org.Role]int{org.RoleAnalyst: 700, org.RoleContractor: 130}),
		testLossTable(), 2000)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	summary, err := e.Run(1.0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.EffectiveVulnerability != 0 {
		t.Errorf("Expected effective vulnerability 0, got %f", summary.EffectiveVulnerability)
	}
	if summary.TotalCompanyLoss.MeanEAL != 0 {
		t.Errorf("Expected mean EAL exactly 0 under full mitigation, got %f", summary.TotalCompanyLoss.MeanEAL)
	}
	if summary.TotalCompanyLoss.Max != 0 {
		t.Errorf("Expected max loss 0 under full mitigation, got %f", summary.TotalCompanyLoss.Max)
	}
}

func TestEngine_ZeroRateRoleContributesNothing(t *testing.T) {
	e, err := NewEngine(
		fullRates(map[org.Role]float64{org.RoleAnalyst: 0.05}),
		fullHeadcounts(map[org.Role]int{org.RoleAnalyst: 700, org.RoleCLevel: 9000}),
		testLossTable(), 2000)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	summary, err := e.Run(0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	clevel := summary.LossByRole[org.RoleCLevel]
	if clevel.MeanLoss != 0 || clevel.Max != 0 || clevel.MeanIncidents != 0 {
		t.Errorf("Role with zero incident rate contributed loss: %+v", clevel)
	}

	analyst := summary.LossByRole[org.RoleAnalyst]
	if analyst.MeanLoss <= 0 {
		t.Errorf("Expected positive analyst mean loss, got %f", analyst.MeanLoss)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	rates := fullRates(map[org.Role]float64{org.RoleAnalyst: 0.03, org.RoleTrader: 0.02, org.RoleContractor: 0.06})
	heads := fullHeadcounts(map[org.Role]int{org.RoleAnalyst: 700, org.RoleTrader: 100, org.RoleContractor: 130})

	e, err := NewEngine(rates, heads, testLossTable(), 3000)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	a, err := e.Run(0.6)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := e.Run(0.6)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("Two runs with identical mitigation weight produced different summaries")
	}
}

func TestEngine_MitigationMonotonic(t *testing.T) {
	rates := fullRates(map[org.Role]float64{org.RoleAnalyst: 0.03, org.RoleITAdmin: 0.04, org.RoleContractor: 0.06})
	heads := fullHeadcounts(map[org.Role]int{org.RoleAnalyst: 700, org.RoleITAdmin: 50, org.RoleContractor: 130})

	e, err := NewEngine(rates, heads, testLossTable(), 5000)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	prev := -1.0
	for _, weight := range []float64{1.0, 0.75, 0.5, 0.25, 0.0} {
		summary, err := e.Run(weight)
		if err != nil {
			t.Fatalf("Run(%f) failed: %v", weight, err)
		}
		mean := summary.TotalCompanyLoss.MeanEAL
		if mean < prev {
			t.Fatalf("Mean EAL decreased from %f to %f as mitigation weakened (weight %f)", prev, mean, weight)
		}
		prev = mean
	}
}

func TestEngine_MeanWithinSanityBand(t *testing.T) {
	// 100 analysts at poa 0.02: ~2 insiders/trial, ~7 attempts, ~5.25
	// successes at base vulnerability, each worth [10k, 500k]. The mean must
	// land well inside a generous multiple of those bounds.
	e, err := NewEngine(
		fullRates(map[org.Role]float64{org.RoleAnalyst: 0.02}),
		fullHeadcounts(map[org.Role]int{org.RoleAnalyst: 100}),
		testLossTable(), DefaultTrials)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	summary, err := e.Run(0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	mean := summary.TotalCompanyLoss.MeanEAL
	lo := 0.5 * 5.25 * 10000  // half the expected successes at the floor
	hi := 2.0 * 5.25 * 500000 // double the expected successes at the ceiling
	if mean <= lo || mean >= hi {
		t.Errorf("Mean EAL %f outside sanity band (%f, %f)", mean, lo, hi)
	}
	if summary.TotalCompanyLoss.Min < 0 {
		t.Errorf("Min loss is negative: %f", summary.TotalCompanyLoss.Min)
	}
}

func TestEngine_PercentileOrdering(t *testing.T) {
	e, err := NewEngine(
		fullRates(map[org.Role]float64{org.RoleAnalyst: 0.03, org.RoleContractor: 0.06}),
		fullHeadcounts(map[org.Role]int{org.RoleAnalyst: 700, org.RoleContractor: 130}),
		testLossTable(), 4000)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	summary, err := e.Run(0.3)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	s := summary.TotalCompanyLoss
	if !(s.Min <= s.P5 && s.P5 <= s.Median && s.Median <= s.P95 && s.P95 <= s.Max) {
		t.Errorf("Percentiles out of order: %+v", s)
	}
	if len(summary.LossByRole[org.RoleAnalyst].Losses) != 4000 {
		t.Errorf("Expected per-role loss series of length 4000, got %d",
			len(summary.LossByRole[org.RoleAnalyst].Losses))
	}
}

func TestEngine_BaselineRunMatchesZeroWeight(t *testing.T) {
	// Feeding the estimator's own output back with weight 0 must hit the
	// effective == base vulnerability branch: the comparison block then
	// reports identical baseline and mitigated means.
	e, err := NewEngine(
		fullRates(map[org.Role]float64{org.RoleAnalyst: 0.029, org.RoleTrader: 0.02}),
		fullHeadcounts(map[org.Role]int{org.RoleAnalyst: 700, org.RoleTrader: 100}),
		testLossTable(), 2000)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	summary, err := e.Run(0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.EffectiveVulnerability != BaseVulnerability {
		t.Errorf("Expected effective vulnerability %f, got %f", BaseVulnerability, summary.EffectiveVulnerability)
	}
	c := summary.Comparison
	if c.BaselineMeanEAL != c.WithMitigationMeanEAL {
		t.Errorf("Baseline %f and mitigated %f means differ at weight 0", c.BaselineMeanEAL, c.WithMitigationMeanEAL)
	}
	if c.TotalSavings != 0 || c.SavingsPercentage != 0 {
		t.Errorf("Expected zero savings at weight 0, got %+v", c)
	}
}

func TestEngine_SavingsPercentageDefinedOnZeroBaseline(t *testing.T) {
	e, err := NewEngine(fullRates(nil), fullHeadcounts(map[org.Role]int{org.RoleAnalyst: 700}), testLossTable(), 500)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	summary, err := e.Run(0.5)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Comparison.SavingsPercentage != 0 {
		t.Errorf("Expected savings percentage 0 on zero baseline, got %f", summary.Comparison.SavingsPercentage)
	}
}

func TestEngine_RejectsBadInputs(t *testing.T) {
	table := testLossTable()

	if _, err := NewEngine(map[org.Role]float64{org.RoleAnalyst: 0.02}, fullHeadcounts(nil), table, 100); err == nil {
		t.Error("Expected error for incomplete rate table, got nil")
	}
	if _, err := NewEngine(fullRates(map[org.Role]float64{org.RoleAnalyst: 1.5}), fullHeadcounts(nil), table, 100); err == nil {
		t.Error("Expected error for rate above 1, got nil")
	}
	if _, err := NewEngine(fullRates(nil), map[org.Role]int{org.RoleAnalyst: 700}, table, 100); err == nil {
		t.Error("Expected error for incomplete headcount table, got nil")
	}

	broken := testLossTable()
	delete(broken, TierTeamLeads)
	if _, err := NewEngine(fullRates(nil), fullHeadcounts(nil), broken, 100); err == nil {
		t.Error("Expected error for loss table missing a mapped tier, got nil")
	}

	e, err := NewEngine(fullRates(nil), fullHeadcounts(nil), table, 100)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if _, err := e.Run(1.5); err == nil {
		t.Error("Expected error for mitigation weight above 1, got nil")
	}
	if _, err := e.Run(-0.1); err == nil {
		t.Error("Expected error for negative mitigation weight, got nil")
	}
}
