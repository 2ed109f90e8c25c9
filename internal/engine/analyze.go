package engine

import (
	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// AnalyzeSchedule derives utilization statistics from a finished result by
// read-only aggregation; no strategy is rerun. The grid must be the one the
// result was generated against.
func (e *Engine) AnalyzeSchedule(result *models.ScheduleResult, grid models.TimeGrid) models.ScheduleAnalysis {
	analysis := models.ScheduleAnalysis{
		TeacherSessionCounts:   make(map[string]int),
		TeacherDailySessions:   make(map[string]map[models.Day]int),
		ClassroomSessionCounts: make(map[string]int),
		DayOccupancy:           make(map[models.Day]int),
		SlotOccupancy:          make(map[models.SlotKey]int),
	}
	if result == nil {
		return analysis
	}

	for _, a := range result.Assignments {
		analysis.TeacherSessionCounts[a.TeacherID]++
		if analysis.TeacherDailySessions[a.TeacherID] == nil {
			analysis.TeacherDailySessions[a.TeacherID] = make(map[models.Day]int)
		}
		analysis.TeacherDailySessions[a.TeacherID][a.Day]++
		analysis.ClassroomSessionCounts[a.ClassroomID]++
		analysis.DayOccupancy[a.Day]++
		analysis.SlotOccupancy[a.Key()]++
	}

	// Busiest day and slot, earliest cell winning ties for stable output.
	bestDay := 0
	for _, day := range grid.Days {
		if n := analysis.DayOccupancy[day]; n > bestDay {
			bestDay = n
			analysis.BusiestDay = day
		}
	}
	bestSlot := 0
	for _, cell := range grid.Cells() {
		if n := analysis.SlotOccupancy[cell]; n > bestSlot {
			bestSlot = n
			analysis.BusiestSlot = cell
		}
	}

	if cells := grid.CellCount(); cells > 0 {
		analysis.GridUtilization = float64(len(result.Assignments)) / float64(cells)
	}

	return analysis
}
