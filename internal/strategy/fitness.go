package strategy

import (
	"math"
	"sort"

	"github.com/noah-isme/sma-timetable-engine/internal/conflict"
	"github.com/noah-isme/sma-timetable-engine/internal/constraint"
	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

const (
	maxFitness         = 100.0
	preferenceScale    = 10.0
	distributionScale  = 5.0
	workloadOverWeight = models.SeverityPreferenceViolation
)

// Evaluate scores a candidate as 100 minus the severity-weighted conflict
// penalty, plus preference and distribution bonuses, clamped to [0,100]. The
// returned records include one unschedulable entry per missing session, so a
// caller can publish them with the result.
func Evaluate(store *constraint.Store, detector *conflict.Detector, cand Candidate) (float64, []models.ConflictRecord) {
	assignments := cand.Assignments()
	records := detector.FindConflicts(assignments)
	for _, g := range cand.Groups {
		for i := 0; i < g.Missing; i++ {
			records = append(records, conflict.UnschedulableRecord(g.RequirementID, len(g.Sessions)+i))
		}
	}

	penalty := 0.0
	for _, r := range records {
		penalty += r.Severity
	}
	penalty += workloadPenalty(store, assignments)

	score := maxFitness - penalty + preferenceBonus(store, assignments) + distributionBonus(store, assignments)
	return math.Max(0, math.Min(maxFitness, score)), records
}

// preferenceBonus is the mean preference score across assignments, scaled.
func preferenceBonus(store *constraint.Store, assignments []models.Assignment) float64 {
	if len(assignments) == 0 {
		return 0
	}
	total := 0.0
	for _, a := range assignments {
		total += store.PreferenceScore(a.TeacherID, a.Day, a.Slot)
	}
	return preferenceScale * total / float64(len(assignments))
}

// distributionBonus rewards spreading each teacher's sessions evenly across
// the week. A teacher whose daily loads match the weekly mean scores 1, a
// fully clustered week approaches 0.
func distributionBonus(store *constraint.Store, assignments []models.Assignment) float64 {
	if len(assignments) == 0 {
		return 0
	}
	days := len(store.Grid().Days)
	if days == 0 {
		return 0
	}

	perTeacher := make(map[string]map[models.Day]int)
	for _, a := range assignments {
		if perTeacher[a.TeacherID] == nil {
			perTeacher[a.TeacherID] = make(map[models.Day]int)
		}
		perTeacher[a.TeacherID][a.Day]++
	}

	ids := make([]string, 0, len(perTeacher))
	for id := range perTeacher {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	total := 0.0
	for _, id := range ids {
		daily := perTeacher[id]
		sessions := 0
		for _, n := range daily {
			sessions += n
		}
		ideal := float64(sessions) / float64(days)
		deviation := 0.0
		for _, day := range store.Grid().Days {
			deviation += math.Abs(float64(daily[day]) - ideal)
		}
		// deviation is at most 2*sessions for a fully clustered week.
		total += 1 - deviation/(2*float64(sessions))
	}
	return distributionScale * total / float64(len(ids))
}

// workloadPenalty charges the soft teacher workload limits: one preference
// weight per session over the daily or weekly maximum.
func workloadPenalty(store *constraint.Store, assignments []models.Assignment) float64 {
	perTeacher := make(map[string]map[models.Day]int)
	for _, a := range assignments {
		if perTeacher[a.TeacherID] == nil {
			perTeacher[a.TeacherID] = make(map[models.Day]int)
		}
		perTeacher[a.TeacherID][a.Day]++
	}

	ids := make([]string, 0, len(perTeacher))
	for id := range perTeacher {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	penalty := 0.0
	for _, id := range ids {
		daily := perTeacher[id]
		teacher, ok := store.Teacher(id)
		if !ok {
			continue
		}
		weekly := 0
		for _, n := range daily {
			weekly += n
			if teacher.MaxDailySessions > 0 && n > teacher.MaxDailySessions {
				penalty += workloadOverWeight * float64(n-teacher.MaxDailySessions)
			}
		}
		if teacher.MaxWeeklySessions > 0 && weekly > teacher.MaxWeeklySessions {
			penalty += workloadOverWeight * float64(weekly-teacher.MaxWeeklySessions)
		}
	}
	return penalty
}
