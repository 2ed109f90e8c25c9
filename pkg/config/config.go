package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config drives the schedule-bench tool. The engine itself takes its run
// parameters through engine.Config; these values only provide defaults and
// wiring for the CLI.
type Config struct {
	Env string

	Log     LogConfig
	Dataset DatasetConfig
	Output  OutputConfig
	Runner  RunnerConfig
	Metrics MetricsConfig
}

// LogConfig tunes the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// DatasetConfig points at the CSV inputs for a bench run.
type DatasetConfig struct {
	RequirementsFile string
	TeachersFile     string
	ClassroomsFile   string
	PreferencesFile  string
}

// OutputConfig controls bench artifacts.
type OutputConfig struct {
	Dir      string
	WriteCSV bool
	WritePDF bool
	PDFTitle string
}

// MetricsConfig controls the optional Prometheus scrape endpoint of the
// bench tool. An empty address disables it.
type MetricsConfig struct {
	Addr string
}

// RunnerConfig carries default engine parameters for bench runs.
type RunnerConfig struct {
	Strategies              []string
	PopulationSize          int
	MaxGenerations          int
	CrossoverRate           float64
	MutationRate            float64
	EliteSize               int
	TournamentSize          int
	ConvergenceThreshold    int
	GreedyImprovementRounds int
	Timeout                 time.Duration
	Seed                    int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// The .env file is optional: every key has a default and may come from
	// the process environment. An explicit config file surfaces a missing
	// file as *fs.PathError, not ConfigFileNotFoundError.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dataset = DatasetConfig{
		RequirementsFile: v.GetString("DATASET_REQUIREMENTS_FILE"),
		TeachersFile:     v.GetString("DATASET_TEACHERS_FILE"),
		ClassroomsFile:   v.GetString("DATASET_CLASSROOMS_FILE"),
		PreferencesFile:  v.GetString("DATASET_PREFERENCES_FILE"),
	}

	cfg.Output = OutputConfig{
		Dir:      v.GetString("OUTPUT_DIR"),
		WriteCSV: v.GetBool("OUTPUT_WRITE_CSV"),
		WritePDF: v.GetBool("OUTPUT_WRITE_PDF"),
		PDFTitle: v.GetString("OUTPUT_PDF_TITLE"),
	}

	cfg.Metrics = MetricsConfig{
		Addr: v.GetString("METRICS_ADDR"),
	}

	cfg.Runner = RunnerConfig{
		Strategies:              splitAndTrim(v.GetString("RUNNER_STRATEGIES")),
		PopulationSize:          v.GetInt("RUNNER_POPULATION_SIZE"),
		MaxGenerations:          v.GetInt("RUNNER_MAX_GENERATIONS"),
		CrossoverRate:           v.GetFloat64("RUNNER_CROSSOVER_RATE"),
		MutationRate:            v.GetFloat64("RUNNER_MUTATION_RATE"),
		EliteSize:               v.GetInt("RUNNER_ELITE_SIZE"),
		TournamentSize:          v.GetInt("RUNNER_TOURNAMENT_SIZE"),
		ConvergenceThreshold:    v.GetInt("RUNNER_CONVERGENCE_THRESHOLD"),
		GreedyImprovementRounds: v.GetInt("RUNNER_GREEDY_IMPROVEMENT_ROUNDS"),
		Timeout:                 parseDuration(v.GetString("RUNNER_TIMEOUT"), 30*time.Second),
		Seed:                    v.GetInt64("RUNNER_SEED"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DATASET_REQUIREMENTS_FILE", "./data/requirements.csv")
	v.SetDefault("DATASET_TEACHERS_FILE", "./data/teachers.csv")
	v.SetDefault("DATASET_CLASSROOMS_FILE", "./data/classrooms.csv")
	v.SetDefault("DATASET_PREFERENCES_FILE", "./data/preferences.csv")

	v.SetDefault("OUTPUT_DIR", "./out")
	v.SetDefault("OUTPUT_WRITE_CSV", true)
	v.SetDefault("OUTPUT_WRITE_PDF", false)
	v.SetDefault("OUTPUT_PDF_TITLE", "Weekly Timetable")

	v.SetDefault("METRICS_ADDR", "")

	v.SetDefault("RUNNER_STRATEGIES", "greedy,genetic,hybrid")
	v.SetDefault("RUNNER_POPULATION_SIZE", 60)
	v.SetDefault("RUNNER_MAX_GENERATIONS", 200)
	v.SetDefault("RUNNER_CROSSOVER_RATE", 0.9)
	v.SetDefault("RUNNER_MUTATION_RATE", 0.15)
	v.SetDefault("RUNNER_ELITE_SIZE", 4)
	v.SetDefault("RUNNER_TOURNAMENT_SIZE", 3)
	v.SetDefault("RUNNER_CONVERGENCE_THRESHOLD", 30)
	v.SetDefault("RUNNER_GREEDY_IMPROVEMENT_ROUNDS", 10)
	v.SetDefault("RUNNER_TIMEOUT", "30s")
	v.SetDefault("RUNNER_SEED", 1)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
