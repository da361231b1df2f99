package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bbrisk/internal/behavior"
	"bbrisk/internal/config"
	"bbrisk/internal/logging"
	"bbrisk/internal/org"
	"bbrisk/internal/server"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "bbrisk",
	Short: "bbrisk estimates insider-threat financial risk via Monte Carlo simulation",
	Long: `bbrisk generates a labeled behavioral activity dataset for a simulated
organization, estimates empirical insider-incident rates from it, and runs a
Monte Carlo loss simulation (binomial insiders, Poisson attempts, binomial
successes, lognormal losses) to produce annual-loss statistics and a
baseline-vs-mitigated comparison.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		// Reference tables are validated up front: a role without a complete
		// profile would silently corrupt every estimate downstream.
		if err := behavior.ValidateProfiles(); err != nil {
			log.Fatal().Err(err).Msg("Invalid role profile configuration")
		}
		if err := org.ValidateHeadcounts(org.DefaultHeadcounts); err != nil {
			log.Fatal().Err(err).Msg("Invalid headcount configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("bbrisk starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Msg("Tool server starting Stdio loop")
		srv := server.NewServer(cfg)
		if err := srv.Serve(); err != nil {
			log.Fatal().Err(err).Msg("Server terminated")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
