// Package export renders finished schedules into CSV and PDF artifacts.
package export

import (
	"fmt"
	"sort"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// TimetableRow is one exported assignment.
type TimetableRow struct {
	Day           string  `csv:"day"`
	Slot          int     `csv:"slot"`
	RequirementID string  `csv:"requirement_id"`
	TeacherID     string  `csv:"teacher_id"`
	ClassroomID   string  `csv:"classroom_id"`
	Score         float64 `csv:"score"`
}

// TimetableRows flattens a result into export rows, day-major.
func TimetableRows(result *models.ScheduleResult) []TimetableRow {
	if result == nil {
		return nil
	}
	rows := make([]TimetableRow, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		rows = append(rows, TimetableRow{
			Day:           a.Day.String(),
			Slot:          a.Slot,
			RequirementID: a.RequirementID,
			TeacherID:     a.TeacherID,
			ClassroomID:   a.ClassroomID,
			Score:         a.Score,
		})
	}
	return rows
}

// UtilizationRow is one exported per-teacher utilization line.
type UtilizationRow struct {
	TeacherID string `csv:"teacher_id"`
	Sessions  int    `csv:"sessions"`
}

// UtilizationRows flattens per-teacher session counts, ordered by id.
func UtilizationRows(analysis models.ScheduleAnalysis) []UtilizationRow {
	ids := make([]string, 0, len(analysis.TeacherSessionCounts))
	for id := range analysis.TeacherSessionCounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]UtilizationRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, UtilizationRow{TeacherID: id, Sessions: analysis.TeacherSessionCounts[id]})
	}
	return rows
}

// summaryLine condenses the run headline for document headers.
func summaryLine(result *models.ScheduleResult) string {
	return fmt.Sprintf("strategy=%s fitness=%.1f placed=%d/%d conflicts=%d",
		result.Strategy, result.Fitness, result.PlacedSessions, result.RequiredSessions, len(result.Conflicts))
}
