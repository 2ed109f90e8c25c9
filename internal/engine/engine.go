// Package engine exposes the scheduling facade: it validates the run
// configuration, builds the constraint store, dispatches to a strategy and
// normalises the outcome into an immutable ScheduleResult.
package engine

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-engine/internal/conflict"
	"github.com/noah-isme/sma-timetable-engine/internal/constraint"
	"github.com/noah-isme/sma-timetable-engine/internal/models"
	"github.com/noah-isme/sma-timetable-engine/internal/strategy"
	appErrors "github.com/noah-isme/sma-timetable-engine/pkg/errors"
)

// Engine generates timetables. It holds no per-run state: concurrent
// GenerateSchedule calls are independent.
type Engine struct {
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *Metrics
}

// NewEngine wires the engine dependencies. Nil validator, logger and metrics
// fall back to working defaults.
func NewEngine(validate *validator.Validate, logger *zap.Logger, metrics *Metrics) *Engine {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{validator: validate, logger: logger, metrics: metrics}
}

// GenerateSchedule runs the configured strategy over the inputs and returns
// the best schedule found. Infeasible sessions and an exhausted time budget
// are reported inside the result, not as errors; only invalid configuration,
// invalid input or a strategy invariant violation fail the call.
func (e *Engine) GenerateSchedule(ctx context.Context, input models.ScheduleInput, cfg Config) (*models.ScheduleResult, error) {
	start := time.Now()

	cfg = cfg.withDefaults()
	if err := e.validator.Struct(cfg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidConfig.Code, "invalid run configuration")
	}
	if err := cfg.checkRanges(); err != nil {
		return nil, err
	}

	store, err := constraint.New(input)
	if err != nil {
		return nil, err
	}
	detector := conflict.NewDetector(store)

	strat, err := e.strategyFor(cfg)
	if err != nil {
		return nil, err
	}

	env := strategy.Env{
		Store:    store,
		Detector: detector,
		Logger:   e.logger,
		Rng:      rand.New(rand.NewSource(cfg.Seed)),
	}
	if cfg.TimeoutSeconds > 0 {
		env.Deadline = start.Add(time.Duration(cfg.TimeoutSeconds) * time.Second)
	}

	outcome, err := strat.Run(ctx, env)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, "strategy produced an invalid candidate")
	}

	fitness, records := strategy.Evaluate(store, detector, outcome.Candidate)
	assignments := outcome.Candidate.Assignments()
	sortAssignments(assignments)

	required := store.RequiredSessions()
	placed := len(assignments)
	successRate := 1.0
	if required > 0 {
		successRate = float64(placed) / float64(required)
	}

	result := &models.ScheduleResult{
		RunID:              uuid.NewString(),
		Strategy:           strat.Name(),
		Assignments:        assignments,
		Conflicts:          records,
		Fitness:            fitness,
		RequiredSessions:   required,
		PlacedSessions:     placed,
		UnassignedSessions: outcome.Candidate.Unassigned(),
		SuccessRate:        successRate,
		Generations:        outcome.Generations,
		BestFitnessHistory: outcome.BestHistory,
		BudgetExhausted:    outcome.BudgetExhausted,
		Elapsed:            time.Since(start),
		GeneratedAt:        time.Now().UTC(),
	}

	e.metrics.ObserveRun(result)
	e.logger.Info("schedule generated",
		zap.String("run_id", result.RunID),
		zap.String("strategy", result.Strategy),
		zap.Float64("fitness", result.Fitness),
		zap.Int("placed", result.PlacedSessions),
		zap.Int("unassigned", result.UnassignedSessions),
		zap.Int("generations", result.Generations),
		zap.Bool("budget_exhausted", result.BudgetExhausted),
		zap.Duration("elapsed", result.Elapsed),
	)

	return result, nil
}

func (e *Engine) strategyFor(cfg Config) (strategy.Strategy, error) {
	params := strategy.GeneticParams{
		PopulationSize:       cfg.PopulationSize,
		MaxGenerations:       cfg.MaxGenerations,
		CrossoverRate:        cfg.CrossoverRate,
		MutationRate:         cfg.MutationRate,
		EliteSize:            cfg.EliteSize,
		TournamentSize:       cfg.TournamentSize,
		ConvergenceThreshold: cfg.ConvergenceThreshold,
		GreedySeedFraction:   cfg.GreedySeedFraction,
	}

	switch cfg.Strategy {
	case StrategyGreedy:
		return strategy.Greedy{}, nil
	case StrategyGenetic:
		return &strategy.Genetic{Params: params}, nil
	case StrategyHybrid:
		return &strategy.Hybrid{Params: params, ImprovementRounds: cfg.GreedyImprovementRounds}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrInvalidConfig, "unknown strategy "+cfg.Strategy)
	}
}

// sortAssignments orders assignments day-major for stable output.
func sortAssignments(assignments []models.Assignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		if assignments[i].Day != assignments[j].Day {
			return assignments[i].Day < assignments[j].Day
		}
		if assignments[i].Slot != assignments[j].Slot {
			return assignments[i].Slot < assignments[j].Slot
		}
		return assignments[i].RequirementID < assignments[j].RequirementID
	})
}
