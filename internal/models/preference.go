package models

// TeacherPreference scores one grid cell for a teacher. Score lives in
// [0,1]; Available=false removes the cell from the teacher's candidate set
// entirely. Cells without a preference row default to a neutral score.
type TeacherPreference struct {
	TeacherID string  `json:"teacher_id"`
	Day       Day     `json:"day"`
	Slot      int     `json:"slot"`
	Score     float64 `json:"score"`
	Available bool    `json:"available"`
}
