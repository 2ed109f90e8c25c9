// Package dataset loads scheduling inputs from CSV files. List-valued cells
// use pipe separators, days are upper-case names.
package dataset

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
	"github.com/noah-isme/sma-timetable-engine/pkg/config"
	appErrors "github.com/noah-isme/sma-timetable-engine/pkg/errors"
)

// RequirementRecord is one row of requirements.csv.
type RequirementRecord struct {
	ID               string `csv:"id"`
	Subject          string `csv:"subject"`
	Teachers         string `csv:"teachers"`
	Classrooms       string `csv:"classrooms"`
	Days             string `csv:"days"`
	Slots            string `csv:"slots"`
	SessionsPerWeek  int    `csv:"sessions_per_week"`
	Priority         int    `csv:"priority"`
	Headcount        int    `csv:"headcount"`
	RoomType         string `csv:"room_type"`
	AvoidConsecutive bool   `csv:"avoid_consecutive"`
}

// TeacherRecord is one row of teachers.csv.
type TeacherRecord struct {
	ID                string `csv:"id"`
	FullName          string `csv:"full_name"`
	MaxDailySessions  int    `csv:"max_daily_sessions"`
	MaxWeeklySessions int    `csv:"max_weekly_sessions"`
}

// ClassroomRecord is one row of classrooms.csv.
type ClassroomRecord struct {
	ID       string `csv:"id"`
	Name     string `csv:"name"`
	Capacity int    `csv:"capacity"`
	RoomType string `csv:"room_type"`
}

// PreferenceRecord is one row of preferences.csv.
type PreferenceRecord struct {
	TeacherID string  `csv:"teacher_id"`
	Day       string  `csv:"day"`
	Slot      int     `csv:"slot"`
	Score     float64 `csv:"score"`
	Available bool    `csv:"available"`
}

// Load reads the four CSV files referenced by the dataset configuration into
// a ScheduleInput over the given grid.
func Load(cfg config.DatasetConfig, grid models.TimeGrid) (models.ScheduleInput, error) {
	input := models.ScheduleInput{Grid: grid}

	var reqRecords []*RequirementRecord
	if err := unmarshalFile(cfg.RequirementsFile, &reqRecords); err != nil {
		return input, err
	}
	for _, r := range reqRecords {
		req, err := r.toModel()
		if err != nil {
			return input, err
		}
		input.Requirements = append(input.Requirements, req)
	}

	var teacherRecords []*TeacherRecord
	if err := unmarshalFile(cfg.TeachersFile, &teacherRecords); err != nil {
		return input, err
	}
	for _, r := range teacherRecords {
		input.Teachers = append(input.Teachers, models.Teacher{
			ID:                r.ID,
			FullName:          r.FullName,
			MaxDailySessions:  r.MaxDailySessions,
			MaxWeeklySessions: r.MaxWeeklySessions,
		})
	}

	var roomRecords []*ClassroomRecord
	if err := unmarshalFile(cfg.ClassroomsFile, &roomRecords); err != nil {
		return input, err
	}
	for _, r := range roomRecords {
		input.Classrooms = append(input.Classrooms, models.Classroom{
			ID:       r.ID,
			Name:     r.Name,
			Capacity: r.Capacity,
			RoomType: models.RoomType(r.RoomType),
		})
	}

	var prefRecords []*PreferenceRecord
	if err := unmarshalFile(cfg.PreferencesFile, &prefRecords); err != nil {
		return input, err
	}
	for _, r := range prefRecords {
		day := models.ParseDay(r.Day)
		if day == 0 {
			return input, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("preference for teacher %s has unknown day %q", r.TeacherID, r.Day))
		}
		input.Preferences = append(input.Preferences, models.TeacherPreference{
			TeacherID: r.TeacherID,
			Day:       day,
			Slot:      r.Slot,
			Score:     r.Score,
			Available: r.Available,
		})
	}

	return input, nil
}

func (r *RequirementRecord) toModel() (models.TeachingRequirement, error) {
	req := models.TeachingRequirement{
		ID:               r.ID,
		SubjectName:      r.Subject,
		TeacherIDs:       splitList(r.Teachers),
		ClassroomIDs:     splitList(r.Classrooms),
		SessionsPerWeek:  r.SessionsPerWeek,
		Priority:         r.Priority,
		Headcount:        r.Headcount,
		RoomType:         models.RoomType(r.RoomType),
		AvoidConsecutive: r.AvoidConsecutive,
	}

	for _, name := range splitList(r.Days) {
		day := models.ParseDay(name)
		if day == 0 {
			return req, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("requirement %s has unknown day %q", r.ID, name))
		}
		req.Days = append(req.Days, day)
	}

	for _, raw := range splitList(r.Slots) {
		slot, err := strconv.Atoi(raw)
		if err != nil {
			return req, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("requirement %s has invalid slot %q", r.ID, raw))
		}
		req.Slots = append(req.Slots, slot)
	}

	return req, nil
}

func unmarshalFile(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, fmt.Sprintf("failed to open dataset file %s", path))
	}
	defer f.Close()

	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, fmt.Sprintf("failed to parse dataset file %s", path))
	}
	return nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
