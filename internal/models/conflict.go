package models

// ConflictKind categorises a constraint violation found in a schedule.
type ConflictKind string

const (
	ConflictTeacherDoubleBooking   ConflictKind = "TEACHER_DOUBLE_BOOKING"
	ConflictClassroomDoubleBooking ConflictKind = "CLASSROOM_DOUBLE_BOOKING"
	ConflictCapacityExceeded       ConflictKind = "CAPACITY_EXCEEDED"
	ConflictQualificationMismatch  ConflictKind = "QUALIFICATION_MISMATCH"
	ConflictPreferenceViolation    ConflictKind = "PREFERENCE_VIOLATION"
	ConflictUnschedulable          ConflictKind = "UNSCHEDULABLE"
)

// Severity weights feeding the fitness conflict penalty. Double bookings
// dominate, capacity and qualification follow, preference violations are
// nudges.
const (
	SeverityDoubleBooking         = 10.0
	SeverityCapacityExceeded      = 6.0
	SeverityQualificationMismatch = 6.0
	SeverityUnschedulable         = 8.0
	SeverityPreferenceViolation   = 1.0
)

// Severity returns the penalty weight for the conflict kind.
func (k ConflictKind) Severity() float64 {
	switch k {
	case ConflictTeacherDoubleBooking, ConflictClassroomDoubleBooking:
		return SeverityDoubleBooking
	case ConflictCapacityExceeded:
		return SeverityCapacityExceeded
	case ConflictQualificationMismatch:
		return SeverityQualificationMismatch
	case ConflictUnschedulable:
		return SeverityUnschedulable
	case ConflictPreferenceViolation:
		return SeverityPreferenceViolation
	default:
		return 0
	}
}

// ConflictRecord documents one violation. RequirementIDs lists every
// offending requirement (two for double bookings, one otherwise); Day/Slot
// locate the cell where the violation occurred, zero values for violations
// without a cell (unschedulable sessions).
type ConflictRecord struct {
	Kind           ConflictKind `json:"kind"`
	RequirementIDs []string     `json:"requirement_ids"`
	TeacherID      string       `json:"teacher_id,omitempty"`
	ClassroomID    string       `json:"classroom_id,omitempty"`
	Day            Day          `json:"day,omitempty"`
	Slot           int          `json:"slot,omitempty"`
	Severity       float64      `json:"severity"`
	Message        string       `json:"message"`
}
