package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

func testParams() GeneticParams {
	return GeneticParams{
		PopulationSize:       12,
		MaxGenerations:       25,
		CrossoverRate:        0.9,
		MutationRate:         0.2,
		EliteSize:            2,
		TournamentSize:       3,
		ConvergenceThreshold: 10,
		GreedySeedFraction:   0.3,
	}
}

func TestGeneticFindsFullScheduleWhenFeasible(t *testing.T) {
	env := testEnv(t, feasibleInput(), 21)
	g := &Genetic{Params: testParams()}

	outcome, err := g.Run(context.Background(), env)
	require.NoError(t, err)

	assert.Zero(t, outcome.Candidate.Unassigned())
	require.NoError(t, outcome.Candidate.validate(env.Store))

	fitness, records := Evaluate(env.Store, env.Detector, outcome.Candidate)
	assert.Empty(t, records)
	assert.Equal(t, 100.0, fitness)
}

func TestGeneticIsDeterministicForASeed(t *testing.T) {
	g := &Genetic{Params: testParams()}

	first, err := g.Run(context.Background(), testEnv(t, feasibleInput(), 1234))
	require.NoError(t, err)
	second, err := g.Run(context.Background(), testEnv(t, feasibleInput(), 1234))
	require.NoError(t, err)

	assert.Equal(t, first.Candidate, second.Candidate)
	assert.Equal(t, first.Generations, second.Generations)
	assert.Equal(t, first.BestHistory, second.BestHistory)
}

func TestGeneticBestHistoryNeverDecreases(t *testing.T) {
	env := testEnv(t, tightInput(), 77)
	g := &Genetic{Params: testParams()}

	outcome, err := g.Run(context.Background(), env)
	require.NoError(t, err)

	require.NotEmpty(t, outcome.BestHistory)
	for i := 1; i < len(outcome.BestHistory); i++ {
		assert.GreaterOrEqual(t, outcome.BestHistory[i], outcome.BestHistory[i-1])
	}
	assert.Len(t, outcome.BestHistory, outcome.Generations+1)
}

func TestGeneticNeverDoubleBooksUnderPressure(t *testing.T) {
	env := testEnv(t, tightInput(), 99)
	g := &Genetic{Params: testParams()}

	outcome, err := g.Run(context.Background(), env)
	require.NoError(t, err)

	// Five cells for ten demanded sessions: the shortfall surfaces as
	// unschedulable records, never as double bookings.
	assert.Equal(t, 5, outcome.Candidate.Unassigned())
	_, records := Evaluate(env.Store, env.Detector, outcome.Candidate)
	require.Len(t, records, 5)
	for _, r := range records {
		assert.Equal(t, models.ConflictUnschedulable, r.Kind)
	}
}

func TestGeneticFitnessStaysInRange(t *testing.T) {
	env := testEnv(t, tightInput(), 5)
	g := &Genetic{Params: testParams()}

	outcome, err := g.Run(context.Background(), env)
	require.NoError(t, err)

	for _, f := range outcome.BestHistory {
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 100.0)
	}
}

func TestGeneticExpiredBudgetStopsBeforeFirstGeneration(t *testing.T) {
	env := testEnv(t, feasibleInput(), 2)
	env.Deadline = time.Now().Add(-time.Second)
	g := &Genetic{Params: testParams()}

	outcome, err := g.Run(context.Background(), env)
	require.NoError(t, err)

	assert.True(t, outcome.BudgetExhausted)
	assert.Zero(t, outcome.Generations)
	// The seeded population still yields a usable best candidate.
	require.NoError(t, outcome.Candidate.validate(env.Store))
	assert.Len(t, outcome.BestHistory, 1)
}

func TestGeneticConvergenceStopsEarly(t *testing.T) {
	params := testParams()
	params.MaxGenerations = 200
	params.ConvergenceThreshold = 5
	env := testEnv(t, feasibleInput(), 8)
	g := &Genetic{Params: params}

	outcome, err := g.Run(context.Background(), env)
	require.NoError(t, err)

	assert.Less(t, outcome.Generations, params.MaxGenerations)
}
