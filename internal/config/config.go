package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Defaults mirror the reference organization: a 240-working-day year starting
// 2025-09-01, seed 1000 for the generator, 10000 Monte Carlo trials.
const (
	DefaultSeed      = 1000
	DefaultTrials    = 10000
	DefaultDays      = 240
	DefaultStartDate = "2025-09-01"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath       string
	LogDir         string
	DatasetPath    string
	LossRangesPath string
	Seed           uint64
	Trials         int
	HorizonDays    int
	StartDate      time.Time
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	seed, err := strconv.ParseUint(getEnv("SIM_SEED", strconv.Itoa(DefaultSeed)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_SEED: %w", err)
	}
	trials, err := strconv.Atoi(getEnv("SIM_TRIALS", strconv.Itoa(DefaultTrials)))
	if err != nil || trials <= 0 {
		return nil, fmt.Errorf("invalid SIM_TRIALS: %q", getEnv("SIM_TRIALS", ""))
	}
	days, err := strconv.Atoi(getEnv("SIM_DAYS", strconv.Itoa(DefaultDays)))
	if err != nil || days <= 0 {
		return nil, fmt.Errorf("invalid SIM_DAYS: %q", getEnv("SIM_DAYS", ""))
	}
	startDate, err := time.Parse("2006-01-02", getEnv("SIM_START_DATE", DefaultStartDate))
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_START_DATE: %w", err)
	}

	cfg := &AppConfig{
		DataPath:       dataPath,
		LogDir:         logDir,
		DatasetPath:    getEnv("DATASET_PATH", filepath.Join(dataPath, "billybank_activity.csv")),
		LossRangesPath: getEnv("LOSS_RANGES_PATH", filepath.Join(dataPath, "employee_loss_ranges.csv")),
		Seed:           seed,
		Trials:         trials,
		HorizonDays:    days,
		StartDate:      startDate,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
