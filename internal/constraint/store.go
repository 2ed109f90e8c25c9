// Package constraint indexes the scheduling inputs and answers the
// feasibility and scoring queries every strategy depends on.
package constraint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-engine/pkg/errors"
)

// Neutral preference score assumed for cells without an explicit row.
const neutralPreferenceScore = 0.5

// Room fit factor when the classroom is marginally too small (capacity
// within 10% below the headcount). Smaller rooms are excluded outright.
const marginalFitFactor = 0.5

// SlotOption is one eligible (teacher, classroom, day, slot) quadruple for a
// requirement, scored by preference and room fit.
type SlotOption struct {
	TeacherID   string     `json:"teacher_id"`
	ClassroomID string     `json:"classroom_id"`
	Day         models.Day `json:"day"`
	Slot        int        `json:"slot"`
	Score       float64    `json:"score"`
}

// Key returns the grid cell of the option.
func (o SlotOption) Key() models.SlotKey {
	return models.SlotKey{Day: o.Day, Slot: o.Slot}
}

// BuildError aggregates every validation issue found in the inputs so the
// caller can fix them all in one pass.
type BuildError struct {
	Issues []string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "invalid scheduling input"
	}
	return fmt.Sprintf("invalid scheduling input: %s", strings.Join(e.Issues, "; "))
}

type prefKey struct {
	teacherID string
	day       models.Day
	slot      int
}

// Store holds validated, indexed scheduling inputs for one run. It is
// immutable after New and safe for concurrent readers.
type Store struct {
	grid         models.TimeGrid
	requirements []models.TeachingRequirement
	byID         map[string]models.TeachingRequirement
	teachers     map[string]models.Teacher
	classrooms   map[string]models.Classroom
	prefs        map[prefKey]models.TeacherPreference
	qualified    map[string]map[string]bool
	roomFit      map[string]map[string]float64
	options      map[string][]SlotOption
	required     int
}

// New validates referential integrity and eligibility of the inputs, then
// precomputes the scored candidate quadruples for every requirement. All
// validation issues are reported together inside a single validation error.
func New(input models.ScheduleInput) (*Store, error) {
	s := &Store{
		grid:       input.Grid,
		byID:       make(map[string]models.TeachingRequirement, len(input.Requirements)),
		teachers:   make(map[string]models.Teacher, len(input.Teachers)),
		classrooms: make(map[string]models.Classroom, len(input.Classrooms)),
		prefs:      make(map[prefKey]models.TeacherPreference, len(input.Preferences)),
		qualified:  make(map[string]map[string]bool, len(input.Requirements)),
		roomFit:    make(map[string]map[string]float64, len(input.Requirements)),
		options:    make(map[string][]SlotOption, len(input.Requirements)),
	}

	var issues []string

	if len(input.Grid.Days) == 0 || input.Grid.SlotsPerDay < 1 {
		issues = append(issues, "time grid must define at least one day and one slot per day")
	}

	for _, t := range input.Teachers {
		if t.ID == "" {
			issues = append(issues, "teacher with empty id")
			continue
		}
		if _, dup := s.teachers[t.ID]; dup {
			issues = append(issues, fmt.Sprintf("duplicate teacher id %s", t.ID))
			continue
		}
		s.teachers[t.ID] = t
	}

	for _, c := range input.Classrooms {
		if c.ID == "" {
			issues = append(issues, "classroom with empty id")
			continue
		}
		if _, dup := s.classrooms[c.ID]; dup {
			issues = append(issues, fmt.Sprintf("duplicate classroom id %s", c.ID))
			continue
		}
		if c.Capacity <= 0 {
			issues = append(issues, fmt.Sprintf("classroom %s has non-positive capacity %d", c.ID, c.Capacity))
			continue
		}
		s.classrooms[c.ID] = c
	}

	for _, p := range input.Preferences {
		if _, ok := s.teachers[p.TeacherID]; !ok {
			issues = append(issues, fmt.Sprintf("preference references unknown teacher %s", p.TeacherID))
			continue
		}
		if p.Score < 0 || p.Score > 1 {
			issues = append(issues, fmt.Sprintf("preference for teacher %s day %s slot %d has score %.2f outside [0,1]", p.TeacherID, p.Day, p.Slot, p.Score))
			continue
		}
		s.prefs[prefKey{teacherID: p.TeacherID, day: p.Day, slot: p.Slot}] = p
	}

	seenReqs := make(map[string]bool, len(input.Requirements))
	for _, req := range input.Requirements {
		if req.ID == "" {
			issues = append(issues, "requirement with empty id")
			continue
		}
		if seenReqs[req.ID] {
			issues = append(issues, fmt.Sprintf("duplicate requirement id %s", req.ID))
			continue
		}
		seenReqs[req.ID] = true
		issues = append(issues, s.validateRequirement(req)...)
		s.requirements = append(s.requirements, req)
		s.byID[req.ID] = req
	}

	if len(issues) > 0 {
		return nil, appErrors.Wrap(&BuildError{Issues: issues}, appErrors.ErrValidation.Code, "scheduling input rejected")
	}

	for _, req := range s.requirements {
		s.index(req)
		s.required += req.SessionsPerWeek
	}

	return s, nil
}

func (s *Store) validateRequirement(req models.TeachingRequirement) []string {
	var issues []string
	if req.SessionsPerWeek <= 0 {
		issues = append(issues, fmt.Sprintf("requirement %s has non-positive sessions per week %d", req.ID, req.SessionsPerWeek))
	}
	if len(req.TeacherIDs) == 0 {
		issues = append(issues, fmt.Sprintf("requirement %s has no eligible teachers", req.ID))
	}
	if len(req.ClassroomIDs) == 0 {
		issues = append(issues, fmt.Sprintf("requirement %s has no eligible classrooms", req.ID))
	}
	if len(req.Days) == 0 {
		issues = append(issues, fmt.Sprintf("requirement %s has no eligible days", req.ID))
	}
	if len(req.Slots) == 0 {
		issues = append(issues, fmt.Sprintf("requirement %s has no eligible slots", req.ID))
	}
	for _, id := range req.TeacherIDs {
		if _, ok := s.teachers[id]; !ok {
			issues = append(issues, fmt.Sprintf("requirement %s references unknown teacher %s", req.ID, id))
		}
	}
	for _, id := range req.ClassroomIDs {
		if _, ok := s.classrooms[id]; !ok {
			issues = append(issues, fmt.Sprintf("requirement %s references unknown classroom %s", req.ID, id))
		}
	}
	for _, day := range req.Days {
		if !s.grid.Contains(day, 1) {
			issues = append(issues, fmt.Sprintf("requirement %s lists day %s outside the time grid", req.ID, day))
		}
	}
	for _, slot := range req.Slots {
		if slot < 1 || slot > s.grid.SlotsPerDay {
			issues = append(issues, fmt.Sprintf("requirement %s lists slot %d outside the time grid", req.ID, slot))
		}
	}
	return issues
}

// index precomputes qualification, room fit and the ordered candidate list
// for one requirement.
func (s *Store) index(req models.TeachingRequirement) {
	qualified := make(map[string]bool, len(req.TeacherIDs))
	for _, id := range req.TeacherIDs {
		qualified[id] = true
	}
	s.qualified[req.ID] = qualified

	fit := make(map[string]float64, len(req.ClassroomIDs))
	for _, id := range req.ClassroomIDs {
		fit[id] = s.fitFactor(req, s.classrooms[id])
	}
	s.roomFit[req.ID] = fit

	var options []SlotOption
	for _, teacherID := range req.TeacherIDs {
		for _, day := range req.Days {
			for _, slot := range req.Slots {
				if !s.Available(teacherID, day, slot) {
					continue
				}
				prefScore := s.PreferenceScore(teacherID, day, slot)
				for _, classroomID := range req.ClassroomIDs {
					roomFit := fit[classroomID]
					if roomFit <= 0 {
						continue
					}
					options = append(options, SlotOption{
						TeacherID:   teacherID,
						ClassroomID: classroomID,
						Day:         day,
						Slot:        slot,
						Score:       prefScore * roomFit,
					})
				}
			}
		}
	}
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Score != options[j].Score {
			return options[i].Score > options[j].Score
		}
		if options[i].TeacherID != options[j].TeacherID {
			return options[i].TeacherID < options[j].TeacherID
		}
		if options[i].ClassroomID != options[j].ClassroomID {
			return options[i].ClassroomID < options[j].ClassroomID
		}
		if options[i].Day != options[j].Day {
			return options[i].Day < options[j].Day
		}
		return options[i].Slot < options[j].Slot
	})
	s.options[req.ID] = options
}

func (s *Store) fitFactor(req models.TeachingRequirement, room models.Classroom) float64 {
	if req.RoomType != "" && room.RoomType != "" && req.RoomType != room.RoomType {
		return 0
	}
	if req.Headcount <= 0 || room.Capacity >= req.Headcount {
		return 1.0
	}
	// Tolerate up to 10% overflow at a scoring penalty.
	if float64(room.Capacity) >= 0.9*float64(req.Headcount) {
		return marginalFitFactor
	}
	return 0
}

// CandidateSlots returns the eligible quadruples for a requirement ordered by
// descending score. The returned slice is shared: callers must copy it before
// reordering.
func (s *Store) CandidateSlots(requirementID string) []SlotOption {
	return s.options[requirementID]
}

// IsQualified reports whether the teacher may teach the requirement.
func (s *Store) IsQualified(requirementID, teacherID string) bool {
	return s.qualified[requirementID][teacherID]
}

// HasCapacity reports whether the classroom can seat the requirement,
// tolerating marginal overflow.
func (s *Store) HasCapacity(requirementID, classroomID string) bool {
	return s.roomFit[requirementID][classroomID] > 0
}

// FitsFully reports whether the classroom seats the full headcount without
// overflow.
func (s *Store) FitsFully(requirementID string, classroomID string) bool {
	return s.roomFit[requirementID][classroomID] >= 1.0
}

// PreferenceScore returns the teacher's score for the cell, neutral when no
// preference row exists.
func (s *Store) PreferenceScore(teacherID string, day models.Day, slot int) float64 {
	if p, ok := s.prefs[prefKey{teacherID: teacherID, day: day, slot: slot}]; ok {
		return p.Score
	}
	return neutralPreferenceScore
}

// Available reports whether the teacher may be booked on the cell at all.
func (s *Store) Available(teacherID string, day models.Day, slot int) bool {
	if p, ok := s.prefs[prefKey{teacherID: teacherID, day: day, slot: slot}]; ok {
		return p.Available
	}
	return true
}

// Requirements returns the validated requirements in input order.
func (s *Store) Requirements() []models.TeachingRequirement {
	return s.requirements
}

// Requirement looks up a requirement by id.
func (s *Store) Requirement(id string) (models.TeachingRequirement, bool) {
	req, ok := s.byID[id]
	return req, ok
}

// Teacher looks up a teacher by id.
func (s *Store) Teacher(id string) (models.Teacher, bool) {
	t, ok := s.teachers[id]
	return t, ok
}

// Classroom looks up a classroom by id.
func (s *Store) Classroom(id string) (models.Classroom, bool) {
	c, ok := s.classrooms[id]
	return c, ok
}

// TeacherIDs returns every known teacher id in ascending order.
func (s *Store) TeacherIDs() []string {
	ids := make([]string, 0, len(s.teachers))
	for id := range s.teachers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Grid returns the shared time grid.
func (s *Store) Grid() models.TimeGrid {
	return s.grid
}

// RequiredSessions returns the total weekly session demand across
// requirements.
func (s *Store) RequiredSessions() int {
	return s.required
}
