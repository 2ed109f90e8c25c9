package engine

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-engine/pkg/errors"
)

// ampleInput gives every requirement a dedicated teacher and plenty of room,
// so any strategy should place everything without conflicts.
func ampleInput() models.ScheduleInput {
	grid := models.DefaultGrid()
	days := grid.Days
	slots := []int{1, 2, 3, 4, 5, 6, 7, 8}
	return models.ScheduleInput{
		Grid: grid,
		Teachers: []models.Teacher{
			{ID: "T1", FullName: "Ada"},
			{ID: "T2", FullName: "Ben"},
			{ID: "T3", FullName: "Cleo"},
		},
		Classrooms: []models.Classroom{
			{ID: "R1", Capacity: 36},
			{ID: "R2", Capacity: 36},
			{ID: "R3", Capacity: 36},
		},
		Requirements: []models.TeachingRequirement{
			{ID: "MATH-10A", SubjectName: "Mathematics", TeacherIDs: []string{"T1"}, ClassroomIDs: []string{"R1", "R2", "R3"}, Days: days, Slots: slots, SessionsPerWeek: 4, Priority: 3, Headcount: 32},
			{ID: "BIO-10A", SubjectName: "Biology", TeacherIDs: []string{"T2"}, ClassroomIDs: []string{"R1", "R2", "R3"}, Days: days, Slots: slots, SessionsPerWeek: 3, Priority: 2, Headcount: 32},
			{ID: "ART-10A", SubjectName: "Art", TeacherIDs: []string{"T3"}, ClassroomIDs: []string{"R1", "R2", "R3"}, Days: days, Slots: slots, SessionsPerWeek: 2, Priority: 1, Headcount: 32},
		},
	}
}

// overloadedInput demands ten sessions from one teacher on a five-cell grid.
func overloadedInput() models.ScheduleInput {
	days := []models.Day{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday}
	reqs := make([]models.TeachingRequirement, 0, 10)
	for _, id := range []string{"C01", "C02", "C03", "C04", "C05", "C06", "C07", "C08", "C09", "C10"} {
		reqs = append(reqs, models.TeachingRequirement{
			ID:              id,
			TeacherIDs:      []string{"T1"},
			ClassroomIDs:    []string{"R1"},
			Days:            days,
			Slots:           []int{1},
			SessionsPerWeek: 1,
			Headcount:       20,
		})
	}
	return models.ScheduleInput{
		Grid:         models.TimeGrid{Days: days, SlotsPerDay: 1},
		Teachers:     []models.Teacher{{ID: "T1"}},
		Classrooms:   []models.Classroom{{ID: "R1", Capacity: 30}},
		Requirements: reqs,
	}
}

func newTestEngine() *Engine {
	return NewEngine(validator.New(), nil, nil)
}

func TestGenerateScheduleGreedyFillsAmpleInput(t *testing.T) {
	eng := newTestEngine()

	result, err := eng.GenerateSchedule(context.Background(), ampleInput(), Config{Strategy: StrategyGreedy, Seed: 7})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, StrategyGreedy, result.Strategy)
	assert.Equal(t, 9, result.RequiredSessions)
	assert.Equal(t, 9, result.PlacedSessions)
	assert.Zero(t, result.UnassignedSessions)
	assert.Equal(t, 1.0, result.SuccessRate)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 100.0, result.Fitness)
	assert.False(t, result.BudgetExhausted)
	assert.False(t, result.GeneratedAt.IsZero())
}

func TestGenerateScheduleEveryStrategyHandlesOverload(t *testing.T) {
	for _, strategy := range []string{StrategyGreedy, StrategyGenetic, StrategyHybrid} {
		t.Run(strategy, func(t *testing.T) {
			eng := newTestEngine()
			cfg := Config{
				Strategy:       strategy,
				PopulationSize: 10,
				MaxGenerations: 15,
				Seed:           3,
			}

			result, err := eng.GenerateSchedule(context.Background(), overloadedInput(), cfg)
			require.NoError(t, err)

			// Ten sessions for five cells: the shortfall is reported as
			// unschedulable sessions, never as double bookings.
			assert.Equal(t, 10, result.RequiredSessions)
			assert.Equal(t, 5, result.PlacedSessions)
			assert.Equal(t, 5, result.UnassignedSessions)
			assert.Equal(t, 0.5, result.SuccessRate)
			require.Len(t, result.Conflicts, 5)
			for _, c := range result.Conflicts {
				assert.Equal(t, models.ConflictUnschedulable, c.Kind)
			}
		})
	}
}

func TestGenerateScheduleIsReproducibleForASeed(t *testing.T) {
	eng := newTestEngine()
	cfg := Config{Strategy: StrategyHybrid, PopulationSize: 10, MaxGenerations: 10, Seed: 99}

	first, err := eng.GenerateSchedule(context.Background(), ampleInput(), cfg)
	require.NoError(t, err)
	second, err := eng.GenerateSchedule(context.Background(), ampleInput(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Equal(t, first.Fitness, second.Fitness)
	assert.Equal(t, first.BestFitnessHistory, second.BestFitnessHistory)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestGenerateScheduleAssignmentsAreSorted(t *testing.T) {
	eng := newTestEngine()

	result, err := eng.GenerateSchedule(context.Background(), ampleInput(), Config{Strategy: StrategyGenetic, PopulationSize: 8, MaxGenerations: 5, Seed: 2})
	require.NoError(t, err)

	for i := 1; i < len(result.Assignments); i++ {
		prev, cur := result.Assignments[i-1], result.Assignments[i]
		if prev.Day != cur.Day {
			assert.Less(t, int(prev.Day), int(cur.Day))
			continue
		}
		assert.LessOrEqual(t, prev.Slot, cur.Slot)
	}
}

func TestGenerateScheduleRejectsUnknownStrategy(t *testing.T) {
	eng := newTestEngine()

	_, err := eng.GenerateSchedule(context.Background(), ampleInput(), Config{Strategy: "annealing"})
	require.Error(t, err)

	typed := appErrors.FromError(err)
	require.NotNil(t, typed)
	assert.Equal(t, appErrors.ErrInvalidConfig.Code, typed.Code)
}

func TestGenerateScheduleRejectsBadRanges(t *testing.T) {
	eng := newTestEngine()

	cases := map[string]Config{
		"elite not smaller than population": {Strategy: StrategyGenetic, PopulationSize: 4, EliteSize: 4},
		"crossover rate above one":          {Strategy: StrategyGenetic, CrossoverRate: 1.5},
		"negative mutation rate":            {Strategy: StrategyGenetic, MutationRate: -0.1},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := eng.GenerateSchedule(context.Background(), ampleInput(), cfg)
			require.Error(t, err)

			typed := appErrors.FromError(err)
			require.NotNil(t, typed)
			assert.Equal(t, appErrors.ErrInvalidConfig.Code, typed.Code)
		})
	}
}

func TestGenerateScheduleGreedyIgnoresEvolutionaryRanges(t *testing.T) {
	eng := newTestEngine()

	// Population and elite sizes only bind genetic and hybrid runs.
	cfg := Config{Strategy: StrategyGreedy, PopulationSize: 1, EliteSize: 5, Seed: 7}
	result, err := eng.GenerateSchedule(context.Background(), ampleInput(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.SuccessRate)
}

func TestGenerateScheduleNegativeTimeoutRunsUnbounded(t *testing.T) {
	eng := newTestEngine()

	cfg := Config{Strategy: StrategyGreedy, TimeoutSeconds: -1, Seed: 7}
	result, err := eng.GenerateSchedule(context.Background(), ampleInput(), cfg)
	require.NoError(t, err)
	assert.False(t, result.BudgetExhausted)
	assert.Equal(t, 9, result.PlacedSessions)
}

func TestGenerateScheduleRejectsInvalidInput(t *testing.T) {
	eng := newTestEngine()

	input := ampleInput()
	input.Requirements[0].TeacherIDs = []string{"GHOST"}

	_, err := eng.GenerateSchedule(context.Background(), input, Config{Strategy: StrategyGreedy})
	require.Error(t, err)

	typed := appErrors.FromError(err)
	require.NotNil(t, typed)
	assert.Equal(t, appErrors.ErrValidation.Code, typed.Code)
}

func TestDefaultConfigFillsDocumentedValues(t *testing.T) {
	cfg := DefaultConfig(StrategyGenetic)

	assert.Equal(t, 60, cfg.PopulationSize)
	assert.Equal(t, 200, cfg.MaxGenerations)
	assert.Equal(t, 0.9, cfg.CrossoverRate)
	assert.Equal(t, 0.15, cfg.MutationRate)
	assert.Equal(t, 4, cfg.EliteSize)
	assert.Equal(t, 3, cfg.TournamentSize)
	assert.Equal(t, 30, cfg.ConvergenceThreshold)
	assert.Equal(t, int64(1), cfg.Seed)
}

func TestAnalyzeSchedule(t *testing.T) {
	eng := newTestEngine()
	grid := models.DefaultGrid()

	result, err := eng.GenerateSchedule(context.Background(), ampleInput(), Config{Strategy: StrategyGreedy, Seed: 4})
	require.NoError(t, err)

	analysis := eng.AnalyzeSchedule(result, grid)

	assert.Equal(t, 4, analysis.TeacherSessionCounts["T1"])
	assert.Equal(t, 3, analysis.TeacherSessionCounts["T2"])
	assert.Equal(t, 2, analysis.TeacherSessionCounts["T3"])

	total := 0
	for _, n := range analysis.ClassroomSessionCounts {
		total += n
	}
	assert.Equal(t, 9, total)

	dayTotal := 0
	for _, n := range analysis.DayOccupancy {
		dayTotal += n
	}
	assert.Equal(t, 9, dayTotal)

	assert.Equal(t, analysis.DayOccupancy[analysis.BusiestDay], maxOccupancy(analysis.DayOccupancy))
	assert.InDelta(t, 9.0/40.0, analysis.GridUtilization, 1e-9)
}

func TestAnalyzeScheduleNilResult(t *testing.T) {
	eng := newTestEngine()

	analysis := eng.AnalyzeSchedule(nil, models.DefaultGrid())
	assert.Empty(t, analysis.TeacherSessionCounts)
	assert.Zero(t, analysis.GridUtilization)
}

func maxOccupancy(occupancy map[models.Day]int) int {
	best := 0
	for _, n := range occupancy {
		if n > best {
			best = n
		}
	}
	return best
}
