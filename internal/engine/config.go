package engine

import (
	"fmt"

	appErrors "github.com/noah-isme/sma-timetable-engine/pkg/errors"
)

// Strategy names accepted by the engine.
const (
	StrategyGreedy  = "greedy"
	StrategyGenetic = "genetic"
	StrategyHybrid  = "hybrid"
)

// Config is the fully-enumerated run configuration. Zero-valued numeric
// fields are replaced by the documented defaults before validation, so a
// caller only sets what it wants to override.
type Config struct {
	// Strategy selects the construction strategy.
	Strategy string `json:"strategy" validate:"required,oneof=greedy genetic hybrid"`
	// PopulationSize is the number of candidates per generation. Default 60.
	PopulationSize int `json:"population_size" validate:"min=0"`
	// MaxGenerations caps the evolutionary loop. Default 200.
	MaxGenerations int `json:"max_generations" validate:"min=0"`
	// CrossoverRate is the probability of recombining two parents. Default 0.9.
	CrossoverRate float64 `json:"crossover_rate" validate:"min=0,max=1"`
	// MutationRate is the probability of mutating a child. Default 0.15.
	MutationRate float64 `json:"mutation_rate" validate:"min=0,max=1"`
	// EliteSize is the number of candidates carried over unchanged. Default 4.
	EliteSize int `json:"elite_size" validate:"min=0"`
	// TournamentSize is the selection pool per parent pick. Default 3.
	TournamentSize int `json:"tournament_size" validate:"min=0"`
	// ConvergenceThreshold stops the run after this many generations without
	// improvement; 0 disables the check. Default 30.
	ConvergenceThreshold int `json:"convergence_threshold" validate:"min=0"`
	// GreedyImprovementRounds is the hybrid repair cadence in generations.
	// Default 10.
	GreedyImprovementRounds int `json:"greedy_improvement_rounds" validate:"min=0"`
	// GreedySeedFraction is the share of the genetic initial population built
	// greedily. Default 0.3. The hybrid strategy always seeds fully greedy.
	GreedySeedFraction float64 `json:"greedy_seed_fraction" validate:"min=0,max=1"`
	// TimeoutSeconds bounds the run wall-clock; a negative value disables
	// the bound. Default 30.
	TimeoutSeconds int `json:"timeout_seconds"`
	// Seed drives every randomized choice; identical seeds reproduce runs
	// exactly. Default 1.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the documented defaults for a strategy.
func DefaultConfig(strategy string) Config {
	return Config{Strategy: strategy}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.PopulationSize == 0 {
		c.PopulationSize = 60
	}
	if c.MaxGenerations == 0 {
		c.MaxGenerations = 200
	}
	if c.CrossoverRate == 0 {
		c.CrossoverRate = 0.9
	}
	if c.MutationRate == 0 {
		c.MutationRate = 0.15
	}
	if c.EliteSize == 0 {
		c.EliteSize = 4
	}
	if c.TournamentSize == 0 {
		c.TournamentSize = 3
	}
	if c.ConvergenceThreshold == 0 {
		c.ConvergenceThreshold = 30
	}
	if c.GreedyImprovementRounds == 0 {
		c.GreedyImprovementRounds = 10
	}
	if c.GreedySeedFraction == 0 {
		c.GreedySeedFraction = 0.3
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 30
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	return c
}

// checkRanges covers the cross-field rules struct tags cannot express. The
// evolutionary parameters bind only the genetic and hybrid strategies, so a
// greedy run accepts any values there.
func (c Config) checkRanges() error {
	if c.Strategy == StrategyGreedy {
		return nil
	}
	if c.PopulationSize < 2 {
		return appErrors.Clone(appErrors.ErrInvalidConfig, fmt.Sprintf("population size must be at least 2, got %d", c.PopulationSize))
	}
	if c.EliteSize >= c.PopulationSize {
		return appErrors.Clone(appErrors.ErrInvalidConfig, fmt.Sprintf("elite size %d must be smaller than population size %d", c.EliteSize, c.PopulationSize))
	}
	if c.TournamentSize < 1 {
		return appErrors.Clone(appErrors.ErrInvalidConfig, fmt.Sprintf("tournament size must be at least 1, got %d", c.TournamentSize))
	}
	if c.MaxGenerations < 1 {
		return appErrors.Clone(appErrors.ErrInvalidConfig, fmt.Sprintf("max generations must be at least 1, got %d", c.MaxGenerations))
	}
	return nil
}
