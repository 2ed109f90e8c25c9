package models

// Assignment binds one session of a requirement to a concrete
// (teacher, classroom, day, slot) quadruple. Assignments are value types:
// strategies replace them wholesale instead of mutating them in place.
type Assignment struct {
	RequirementID string  `json:"requirement_id"`
	TeacherID     string  `json:"teacher_id"`
	ClassroomID   string  `json:"classroom_id"`
	Day           Day     `json:"day"`
	Slot          int     `json:"slot"`
	Score         float64 `json:"score"`
}

// Key returns the grid cell the assignment occupies.
func (a Assignment) Key() SlotKey {
	return SlotKey{Day: a.Day, Slot: a.Slot}
}
