// Package conflict finds constraint violations in complete or partial
// assignment sets.
package conflict

import (
	"fmt"

	"github.com/noah-isme/sma-timetable-engine/internal/constraint"
	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// Detector checks assignment sets against the constraint store.
type Detector struct {
	store *constraint.Store
}

// NewDetector builds a detector bound to one run's constraint store.
func NewDetector(store *constraint.Store) *Detector {
	return &Detector{store: store}
}

type bookingKey struct {
	id   string
	day  models.Day
	slot int
}

// FindConflicts returns every violation in the assignment set. Double
// bookings are found in one pass over two maps keyed by (teacher,day,slot)
// and (classroom,day,slot); capacity, qualification and preference checks
// are evaluated per assignment.
func (d *Detector) FindConflicts(assignments []models.Assignment) []models.ConflictRecord {
	var records []models.ConflictRecord

	teacherCells := make(map[bookingKey]models.Assignment, len(assignments))
	roomCells := make(map[bookingKey]models.Assignment, len(assignments))

	for _, a := range assignments {
		tKey := bookingKey{id: a.TeacherID, day: a.Day, slot: a.Slot}
		if first, taken := teacherCells[tKey]; taken {
			records = append(records, models.ConflictRecord{
				Kind:           models.ConflictTeacherDoubleBooking,
				RequirementIDs: []string{first.RequirementID, a.RequirementID},
				TeacherID:      a.TeacherID,
				Day:            a.Day,
				Slot:           a.Slot,
				Severity:       models.ConflictTeacherDoubleBooking.Severity(),
				Message:        fmt.Sprintf("teacher %s booked twice on %s slot %d", a.TeacherID, a.Day, a.Slot),
			})
		} else {
			teacherCells[tKey] = a
		}

		rKey := bookingKey{id: a.ClassroomID, day: a.Day, slot: a.Slot}
		if first, taken := roomCells[rKey]; taken {
			records = append(records, models.ConflictRecord{
				Kind:           models.ConflictClassroomDoubleBooking,
				RequirementIDs: []string{first.RequirementID, a.RequirementID},
				ClassroomID:    a.ClassroomID,
				Day:            a.Day,
				Slot:           a.Slot,
				Severity:       models.ConflictClassroomDoubleBooking.Severity(),
				Message:        fmt.Sprintf("classroom %s booked twice on %s slot %d", a.ClassroomID, a.Day, a.Slot),
			})
		} else {
			roomCells[rKey] = a
		}

		records = append(records, d.checkAssignment(a)...)
	}

	return records
}

// checkAssignment evaluates the per-assignment constraints that do not
// depend on the rest of the schedule.
func (d *Detector) checkAssignment(a models.Assignment) []models.ConflictRecord {
	var records []models.ConflictRecord

	if !d.store.IsQualified(a.RequirementID, a.TeacherID) {
		records = append(records, models.ConflictRecord{
			Kind:           models.ConflictQualificationMismatch,
			RequirementIDs: []string{a.RequirementID},
			TeacherID:      a.TeacherID,
			Day:            a.Day,
			Slot:           a.Slot,
			Severity:       models.ConflictQualificationMismatch.Severity(),
			Message:        fmt.Sprintf("teacher %s is not qualified for requirement %s", a.TeacherID, a.RequirementID),
		})
	}

	if !d.store.FitsFully(a.RequirementID, a.ClassroomID) {
		records = append(records, models.ConflictRecord{
			Kind:           models.ConflictCapacityExceeded,
			RequirementIDs: []string{a.RequirementID},
			ClassroomID:    a.ClassroomID,
			Day:            a.Day,
			Slot:           a.Slot,
			Severity:       models.ConflictCapacityExceeded.Severity(),
			Message:        fmt.Sprintf("classroom %s cannot seat requirement %s", a.ClassroomID, a.RequirementID),
		})
	}

	if !d.store.Available(a.TeacherID, a.Day, a.Slot) {
		records = append(records, models.ConflictRecord{
			Kind:           models.ConflictPreferenceViolation,
			RequirementIDs: []string{a.RequirementID},
			TeacherID:      a.TeacherID,
			Day:            a.Day,
			Slot:           a.Slot,
			Severity:       models.ConflictPreferenceViolation.Severity(),
			Message:        fmt.Sprintf("teacher %s is marked unavailable on %s slot %d", a.TeacherID, a.Day, a.Slot),
		})
	}

	return records
}

// WouldConflict reports whether placing the candidate assignment next to the
// existing ones would double-book its teacher or classroom. It supports
// incremental construction without rebuilding the booking maps.
func (d *Detector) WouldConflict(candidate models.Assignment, existing []models.Assignment) bool {
	for _, a := range existing {
		if a.Day != candidate.Day || a.Slot != candidate.Slot {
			continue
		}
		if a.TeacherID == candidate.TeacherID || a.ClassroomID == candidate.ClassroomID {
			return true
		}
	}
	return false
}

// UnschedulableRecord documents a session that no legal slot could host.
func UnschedulableRecord(requirementID string, session int) models.ConflictRecord {
	return models.ConflictRecord{
		Kind:           models.ConflictUnschedulable,
		RequirementIDs: []string{requirementID},
		Severity:       models.ConflictUnschedulable.Severity(),
		Message:        fmt.Sprintf("no legal slot remains for session %d of requirement %s", session+1, requirementID),
	}
}
