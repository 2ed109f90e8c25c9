package models

// RoomType tags a classroom category required by certain subjects.
type RoomType string

const (
	RoomTypeRegular RoomType = "REGULAR"
	RoomTypeLab     RoomType = "LAB"
)

// TeachingRequirement describes one course offering that needs weekly
// sessions placed. Eligibility sets are closed: a strategy may only pick
// teachers, classrooms, days and slots listed here. Immutable for the run.
type TeachingRequirement struct {
	ID               string   `json:"id"`
	SubjectName      string   `json:"subject_name,omitempty"`
	TeacherIDs       []string `json:"teacher_ids"`
	ClassroomIDs     []string `json:"classroom_ids"`
	Days             []Day    `json:"days"`
	Slots            []int    `json:"slots"`
	SessionsPerWeek  int      `json:"sessions_per_week"`
	Priority         int      `json:"priority"`
	Headcount        int      `json:"headcount"`
	RoomType         RoomType `json:"room_type,omitempty"`
	AvoidConsecutive bool     `json:"avoid_consecutive"`
}
