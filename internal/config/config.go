package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fair-mcs/internal/sampling"
	"fair-mcs/internal/simulation"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// SimulationConfig holds the engine defaults a run starts from.
type SimulationConfig struct {
	Iterations    int
	Workers       int
	Seed          uint64
	BetaMethod    sampling.BetaMethod
	MaxRejections int
}

// EngineOptions translates the configuration into simulation engine options.
func (c SimulationConfig) EngineOptions() []simulation.Option {
	opts := []simulation.Option{
		simulation.WithSeed(c.Seed),
		simulation.WithBetaMethod(c.BetaMethod),
	}
	if c.Workers > 0 {
		opts = append(opts, simulation.WithWorkers(c.Workers))
	}
	if c.MaxRejections > 0 {
		opts = append(opts, simulation.WithMaxRejections(c.MaxRejections))
	}
	return opts
}

// ApplyDefaults fills the scenario fields the configuration provides defaults for.
func (c SimulationConfig) ApplyDefaults(in simulation.Input) simulation.Input {
	if in.Iterations == 0 && c.Iterations > 0 {
		in.Iterations = c.Iterations
	}
	return in
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Simulation          SimulationConfig
	DataPath            string
	LogDir              string
	ReportDir           string
	Currency            string
	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Binary directory first; an MCP host often starts us from elsewhere.
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Working directory (development)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))
	// Created on first report.Save.
	reportDir := filepath.Join(dataPath, "reports")

	betaMethod, err := sampling.ParseBetaMethod(getEnv("FAIR_BETA_METHOD", ""))
	if err != nil {
		return nil, fmt.Errorf("FAIR_BETA_METHOD: %w", err)
	}

	iterations, err := getEnvInt("FAIR_ITERATIONS", 10000)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvInt("FAIR_WORKERS", 0)
	if err != nil {
		return nil, err
	}
	maxRejections, err := getEnvInt("FAIR_MAX_REJECTIONS", sampling.DefaultMaxRejections)
	if err != nil {
		return nil, err
	}
	seed, err := strconv.ParseUint(getEnv("FAIR_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("FAIR_SEED: %w", err)
	}

	cfg := &AppConfig{
		Simulation: SimulationConfig{
			Iterations:    iterations,
			Workers:       workers,
			Seed:          seed,
			BetaMethod:    betaMethod,
			MaxRejections: maxRejections,
		},
		DataPath:            dataPath,
		LogDir:              logDir,
		ReportDir:           reportDir,
		Currency:            getEnv("FAIR_CURRENCY", "USD"),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: must not be negative, got %d", key, n)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
