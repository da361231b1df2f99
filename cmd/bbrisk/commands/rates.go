package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"bbrisk/internal/dataset"
	"bbrisk/internal/rates"
)

var ratesDataset string

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Estimate per-role annual incident probabilities from a dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ratesDataset
		if path == "" {
			path = cfg.DatasetPath
		}

		records, err := dataset.LoadCSV(path)
		if err != nil {
			return err
		}
		table := rates.Estimate(records)

		out, err := json.MarshalIndent(table, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	ratesCmd.Flags().StringVar(&ratesDataset, "dataset", "", "dataset CSV path (default: configured dataset path)")
	rootCmd.AddCommand(ratesCmd)
}
