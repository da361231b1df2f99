package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bbrisk/internal/dataset"
	"bbrisk/internal/org"
	"bbrisk/internal/rates"
	"bbrisk/internal/simulation"
)

var (
	simulateWeight  float64
	simulateTrials  int
	simulateDataset string
	simulateOut     string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the Monte Carlo loss simulation against estimated incident rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := simulateDataset
		if path == "" {
			path = cfg.DatasetPath
		}
		trials := simulateTrials
		if trials <= 0 {
			trials = cfg.Trials
		}

		records, err := dataset.LoadCSV(path)
		if err != nil {
			return err
		}
		table := rates.Estimate(records)

		losses, err := simulation.LoadLossRanges(cfg.LossRangesPath)
		if err != nil {
			return err
		}

		engine, err := simulation.NewEngine(table.ByRole, org.DefaultHeadcounts, losses, trials)
		if err != nil {
			return err
		}
		summary, err := engine.Run(simulateWeight)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}

		if simulateOut != "" {
			if err := os.WriteFile(simulateOut, out, 0644); err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}
			log.Info().
				Str("path", simulateOut).
				Float64("mitigation_weight", simulateWeight).
				Float64("mean_eal", summary.TotalCompanyLoss.MeanEAL).
				Msg("Simulation results written")
			return nil
		}

		fmt.Println(string(out))
		return nil
	},
}

func init() {
	simulateCmd.Flags().Float64Var(&simulateWeight, "weight", 0.0, "mitigation weight in [0,1]")
	simulateCmd.Flags().IntVar(&simulateTrials, "trials", 0, "Monte Carlo trial count (default: configured)")
	simulateCmd.Flags().StringVar(&simulateDataset, "dataset", "", "dataset CSV path (default: configured dataset path)")
	simulateCmd.Flags().StringVar(&simulateOut, "out", "", "write the result JSON to this path instead of stdout")
	rootCmd.AddCommand(simulateCmd)
}
