// Package simulation implements the Monte Carlo loss engine: it converts
// per-role annual incident probabilities into a distribution of company-wide
// annual losses, optionally attenuated by a mitigation weight.
package simulation

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"bbrisk/internal/org"
)

const (
	// BaseVulnerability is the unmitigated attack success probability.
	BaseVulnerability = 0.75

	// AttemptsMean parameterizes the Poisson attempt count per insider per year.
	AttemptsMean = 3.5

	// DefaultTrials is the Monte Carlo iteration count.
	DefaultTrials = 10000

	// engineSeed fixes the random source at the start of every pass, so
	// repeated invocations with the same mitigation weight reproduce
	// identical output.
	engineSeed = 80
)

// Engine performs the Monte Carlo loss simulation.
type Engine struct {
	poa        map[org.Role]float64
	headcounts map[org.Role]int
	ranges     map[org.Role]LossRange
	trials     int
}

// NewEngine validates the reference tables and builds an engine. Any
// incomplete table is rejected here, before the first trial runs.
func NewEngine(poa map[org.Role]float64, headcounts map[org.Role]int, losses LossTable, trials int) (*Engine, error) {
	if err := org.ValidateHeadcounts(headcounts); err != nil {
		return nil, err
	}
	if err := losses.Validate(); err != nil {
		return nil, err
	}
	for _, role := range org.AllRoles {
		p, ok := poa[role]
		if !ok {
			return nil, fmt.Errorf("incident-rate table is missing role %q", role)
		}
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("incident rate for role %q outside [0,1]: %g", role, p)
		}
	}

	// Resolve tiers up front; the trial loop must not do fallible lookups.
	ranges := make(map[org.Role]LossRange, len(org.AllRoles))
	for _, role := range org.AllRoles {
		tier, err := TierFor(role)
		if err != nil {
			return nil, err
		}
		ranges[role] = losses[tier]
	}

	if trials <= 0 {
		trials = DefaultTrials
	}
	return &Engine{poa: poa, headcounts: headcounts, ranges: ranges, trials: trials}, nil
}

// Stats summarizes a loss series across trials.
type Stats struct {
	MeanEAL float64 `json:"mean_eal"`
	P5      float64 `json:"p5"`
	Median  float64 `json:"median"`
	P95     float64 `json:"p95"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// RoleResult is the per-role breakdown. Losses carries the raw per-trial
// series: this is the histogram input the external dashboard renders.
type RoleResult struct {
	MeanLoss      float64   `json:"mean_loss"`
	MeanIncidents float64   `json:"mean_incidents"`
	P5            float64   `json:"p5"`
	Median        float64   `json:"median"`
	P95           float64   `json:"p95"`
	Max           float64   `json:"max"`
	Losses        []float64 `json:"losses,omitempty"`
}

// Comparison relates the mitigated run to the zero-mitigation baseline.
type Comparison struct {
	BaselineMeanEAL       float64 `json:"baseline_mean_eal"`
	WithMitigationMeanEAL float64 `json:"with_mitigation_mean_eal"`
	TotalSavings          float64 `json:"total_savings"`
	SavingsPercentage     float64 `json:"savings_percentage"`
}

// Summary is the engine's only output artifact, handed to the external
// dashboard layer as structured data.
type Summary struct {
	MitigationWeight       float64                 `json:"mitigation_weight"`
	EffectiveVulnerability float64                 `json:"effective_vulnerability"`
	Trials                 int                     `json:"trials"`
	TotalCompanyLoss       Stats                   `json:"total_company_loss"`
	LossByRole             map[org.Role]RoleResult `json:"loss_by_role"`
	Comparison             Comparison              `json:"comparison"`
}

type passResult struct {
	total     []float64
	losses    map[org.Role][]float64
	incidents map[org.Role][]float64
}

// Run executes the mitigated simulation plus a zero-mitigation baseline and
// aggregates both into a Summary. Each pass reseeds to the fixed engine
// seed, so a single call is fully deterministic and the baseline differs
// from the mitigated pass only through the mitigation weight.
func (e *Engine) Run(mitigationWeight float64) (*Summary, error) {
	if mitigationWeight < 0 || mitigationWeight > 1 {
		return nil, fmt.Errorf("mitigation weight outside [0,1]: %g", mitigationWeight)
	}

	mitigated := e.runPass(mitigationWeight)
	baseline := e.runPass(0)

	summary := &Summary{
		MitigationWeight:       mitigationWeight,
		EffectiveVulnerability: BaseVulnerability * (1 - mitigationWeight),
		Trials:                 e.trials,
		TotalCompanyLoss:       summarize(mitigated.total),
		LossByRole:             make(map[org.Role]RoleResult, len(org.AllRoles)),
	}

	for _, role := range org.AllRoles {
		series := mitigated.losses[role]
		s := summarize(series)
		summary.LossByRole[role] = RoleResult{
			MeanLoss:      s.MeanEAL,
			MeanIncidents: stat.Mean(mitigated.incidents[role], nil),
			P5:            s.P5,
			Median:        s.Median,
			P95:           s.P95,
			Max:           s.Max,
			Losses:        series,
		}
	}

	baselineMean := stat.Mean(baseline.total, nil)
	mitigatedMean := summary.TotalCompanyLoss.MeanEAL
	savings := baselineMean - mitigatedMean
	savingsPct := 0.0
	if baselineMean > 0 {
		savingsPct = savings / baselineMean * 100
	}
	summary.Comparison = Comparison{
		BaselineMeanEAL:       baselineMean,
		WithMitigationMeanEAL: mitigatedMean,
		TotalSavings:          savings,
		SavingsPercentage:     savingsPct,
	}

	return summary, nil
}

// runPass simulates all trials at one effective vulnerability. Roles are
// visited in AllRoles order within each trial; the draw order is part of the
// determinism contract.
func (e *Engine) runPass(mitigationWeight float64) passResult {
	rng := rand.New(rand.NewSource(engineSeed))
	effVuln := BaseVulnerability * (1 - mitigationWeight)

	res := passResult{
		total:     make([]float64, e.trials),
		losses:    make(map[org.Role][]float64, len(org.AllRoles)),
		incidents: make(map[org.Role][]float64, len(org.AllRoles)),
	}
	for _, role := range org.AllRoles {
		res.losses[role] = make([]float64, e.trials)
		res.incidents[role] = make([]float64, e.trials)
	}

	for t := 0; t < e.trials; t++ {
		totalLoss := 0.0

		for _, role := range org.AllRoles {
			headcount := e.headcounts[role]
			poa := e.poa[role]
			// A role with no seats or no historical incidents contributes
			// exactly zero, without consuming draws.
			if headcount <= 0 || poa <= 0 {
				continue
			}

			nInsiders := int(distuv.Binomial{N: float64(headcount), P: poa, Src: rng}.Rand())
			if nInsiders == 0 {
				continue
			}

			attempts := 0
			poisson := distuv.Poisson{Lambda: AttemptsMean, Src: rng}
			for i := 0; i < nInsiders; i++ {
				attempts += int(poisson.Rand())
			}
			if attempts == 0 {
				continue
			}

			// Full mitigation means zero successes exactly, not a sampled zero.
			if effVuln <= 0 {
				continue
			}
			successes := int(distuv.Binomial{N: float64(attempts), P: effVuln, Src: rng}.Rand())
			res.incidents[role][t] = float64(successes)
			if successes == 0 {
				continue
			}

			lr := e.ranges[role]
			roleLoss := sampleLosses(lr, successes, rng)
			res.losses[role][t] = roleLoss
			totalLoss += roleLoss
		}

		res.total[t] = totalLoss
	}

	return res
}

// sampleLosses draws one lognormal loss per success and sums them. The
// lognormal is parameterized so that [min,max] roughly bounds the 95%
// interval in log space: mu the log-midpoint, sigma a quarter of the log
// span. Draws are clipped back into [min,max].
func sampleLosses(lr LossRange, successes int, rng *rand.Rand) float64 {
	mu := (math.Log(lr.Min) + math.Log(lr.Max)) / 2
	sigma := (math.Log(lr.Max) - math.Log(lr.Min)) / 4

	dist := distuv.LogNormal{Mu: mu, Sigma: sigma, Src: rng}
	sum := 0.0
	for i := 0; i < successes; i++ {
		loss := dist.Rand()
		if loss < lr.Min {
			loss = lr.Min
		} else if loss > lr.Max {
			loss = lr.Max
		}
		sum += loss
	}
	return sum
}

// summarize computes the summary statistics of a per-trial loss series.
func summarize(series []float64) Stats {
	if len(series) == 0 {
		return Stats{}
	}
	sorted := append([]float64(nil), series...)
	sort.Float64s(sorted)

	return Stats{
		MeanEAL: stat.Mean(series, nil),
		P5:      stat.Quantile(0.05, stat.Empirical, sorted, nil),
		Median:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:     stat.Quantile(0.95, stat.Empirical, sorted, nil),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
	}
}
