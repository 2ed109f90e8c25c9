package strategy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-engine/internal/conflict"
	"github.com/noah-isme/sma-timetable-engine/internal/constraint"
	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// feasibleInput has ample room: three requirements, dedicated teachers, two
// classrooms over a Monday-Friday grid with four slots a day.
func feasibleInput() models.ScheduleInput {
	days := []models.Day{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday}
	slots := []int{1, 2, 3, 4}
	return models.ScheduleInput{
		Grid: models.TimeGrid{Days: days, SlotsPerDay: 4},
		Teachers: []models.Teacher{
			{ID: "T1"},
			{ID: "T2"},
			{ID: "T3"},
		},
		Classrooms: []models.Classroom{
			{ID: "R1", Capacity: 30},
			{ID: "R2", Capacity: 30},
		},
		Requirements: []models.TeachingRequirement{
			{ID: "MATH", TeacherIDs: []string{"T1"}, ClassroomIDs: []string{"R1", "R2"}, Days: days, Slots: slots, SessionsPerWeek: 4, Priority: 3, Headcount: 25},
			{ID: "BIO", TeacherIDs: []string{"T2"}, ClassroomIDs: []string{"R1", "R2"}, Days: days, Slots: slots, SessionsPerWeek: 3, Priority: 2, Headcount: 25},
			{ID: "ART", TeacherIDs: []string{"T3"}, ClassroomIDs: []string{"R1", "R2"}, Days: days, Slots: slots, SessionsPerWeek: 2, Priority: 1, Headcount: 25},
		},
	}
}

// tightInput demands ten sessions from a single teacher on a five-cell grid,
// so any strategy must leave exactly five sessions unplaced.
func tightInput() models.ScheduleInput {
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

func testEnv(t *testing.T, input models.ScheduleInput, seed int64) Env {
	t.Helper()
	store, err := constraint.New(input)
	require.NoError(t, err)
	return Env{
		Store:    store,
		Detector: conflict.NewDetector(store),
		Logger:   zap.NewNop(),
		Rng:      rand.New(rand.NewSource(seed)),
	}
}
