package export

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// RenderTimetableCSV encodes the result's assignments as CSV bytes.
func RenderTimetableCSV(result *models.ScheduleResult) ([]byte, error) {
	rows := TimetableRows(result)
	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return nil, fmt.Errorf("encode timetable csv: %w", err)
	}
	return []byte(out), nil
}

// RenderUtilizationCSV encodes per-teacher utilization as CSV bytes.
func RenderUtilizationCSV(analysis models.ScheduleAnalysis) ([]byte, error) {
	rows := UtilizationRows(analysis)
	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return nil, fmt.Errorf("encode utilization csv: %w", err)
	}
	return []byte(out), nil
}
