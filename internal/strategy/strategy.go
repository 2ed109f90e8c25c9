// Package strategy implements the timetable construction strategies: greedy
// placement, genetic search and the hybrid of the two.
package strategy

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-engine/internal/conflict"
	"github.com/noah-isme/sma-timetable-engine/internal/constraint"
)

// Env carries the per-run collaborators a strategy consults. Every field is
// owned by the engine call; nothing is shared across runs.
type Env struct {
	Store    *constraint.Store
	Detector *conflict.Detector
	Logger   *zap.Logger
	Rng      *rand.Rand
	Deadline time.Time
}

// expired reports whether the run budget is spent, either through the
// caller's context or the wall-clock deadline. Strategies call it at their
// defined checkpoints; cancellation is cooperative.
func (e Env) expired(ctx context.Context) bool {
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	return !e.Deadline.IsZero() && time.Now().After(e.Deadline)
}

// Outcome is a strategy's raw product before the engine normalises it into a
// ScheduleResult.
type Outcome struct {
	Candidate       Candidate
	Generations     int
	BestHistory     []float64
	BudgetExhausted bool
}

// Strategy builds one candidate schedule under the run environment.
type Strategy interface {
	Name() string
	Run(ctx context.Context, env Env) (Outcome, error)
}
