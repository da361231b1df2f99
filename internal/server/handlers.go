package server

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"bbrisk/internal/dataset"
	"bbrisk/internal/org"
	"bbrisk/internal/rates"
	"bbrisk/internal/simulation"
)

func (s *Server) handleGenerate(args map[string]interface{}) (interface{}, error) {
	out := stringArg(args, "out", s.cfg.DatasetPath)
	days := intArg(args, "days", s.cfg.HorizonDays)
	seed := uint64(intArg(args, "seed", int(s.cfg.Seed)))

	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	users, err := org.BuildPopulation(org.DefaultHeadcounts, rng)
	if err != nil {
		return nil, err
	}
	records, err := dataset.Build(users, dataset.BuildConfig{Start: s.cfg.StartDate, Days: days}, rng)
	if err != nil {
		return nil, err
	}
	if err := dataset.WriteCSV(out, records); err != nil {
		return nil, err
	}

	malicious := dataset.CountMalicious(records)
	log.Info().
		Int("users", len(users)).
		Int("rows", len(records)).
		Int("malicious_days", malicious).
		Dur("elapsed", time.Since(start)).
		Msg("Generated activity dataset")

	return map[string]interface{}{
		"path":           out,
		"users":          len(users),
		"rows":           len(records),
		"days":           days,
		"seed":           seed,
		"malicious_days": malicious,
	}, nil
}

func (s *Server) handleRates(args map[string]interface{}) (interface{}, error) {
	path := stringArg(args, "dataset", s.cfg.DatasetPath)

	records, err := dataset.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	return rates.Estimate(records), nil
}

func (s *Server) handleSimulate(args map[string]interface{}) (interface{}, error) {
	weight, ok := args["mitigation_weight"].(float64)
	if !ok {
		return nil, fmt.Errorf("mitigation_weight is required")
	}
	trials := intArg(args, "trials", s.cfg.Trials)
	path := stringArg(args, "dataset", s.cfg.DatasetPath)

	records, err := dataset.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	table := rates.Estimate(records)

	losses, err := simulation.LoadLossRanges(s.cfg.LossRangesPath)
	if err != nil {
		return nil, err
	}

	engine, err := simulation.NewEngine(table.ByRole, org.DefaultHeadcounts, losses, trials)
	if err != nil {
		return nil, err
	}
	return engine.Run(weight)
}

func stringArg(args map[string]interface{}, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return fallback
}
