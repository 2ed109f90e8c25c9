package models

import "time"

// ScheduleInput bundles everything a scheduling run consumes. The engine
// treats it as read-only; callers may reuse it across runs.
type ScheduleInput struct {
	Grid         TimeGrid              `json:"grid"`
	Requirements []TeachingRequirement `json:"requirements"`
	Teachers     []Teacher             `json:"teachers"`
	Classrooms   []Classroom           `json:"classrooms"`
	Preferences  []TeacherPreference   `json:"preferences"`
}

// ScheduleResult is the immutable outcome of one engine run.
type ScheduleResult struct {
	RunID              string           `json:"run_id"`
	Strategy           string           `json:"strategy"`
	Assignments        []Assignment     `json:"assignments"`
	Conflicts          []ConflictRecord `json:"conflicts"`
	Fitness            float64          `json:"fitness"`
	RequiredSessions   int              `json:"required_sessions"`
	PlacedSessions     int              `json:"placed_sessions"`
	UnassignedSessions int              `json:"unassigned_sessions"`
	SuccessRate        float64          `json:"success_rate"`
	Generations        int              `json:"generations,omitempty"`
	BestFitnessHistory []float64        `json:"best_fitness_history,omitempty"`
	BudgetExhausted    bool             `json:"budget_exhausted"`
	Elapsed            time.Duration    `json:"elapsed"`
	GeneratedAt        time.Time        `json:"generated_at"`
}

// ScheduleAnalysis aggregates utilization statistics for a result.
type ScheduleAnalysis struct {
	TeacherSessionCounts   map[string]int         `json:"teacher_session_counts"`
	TeacherDailySessions   map[string]map[Day]int `json:"teacher_daily_sessions"`
	ClassroomSessionCounts map[string]int         `json:"classroom_session_counts"`
	DayOccupancy           map[Day]int            `json:"day_occupancy"`
	SlotOccupancy          map[SlotKey]int        `json:"-"`
	BusiestDay             Day                    `json:"busiest_day,omitempty"`
	BusiestSlot            SlotKey                `json:"busiest_slot,omitempty"`
	GridUtilization        float64                `json:"grid_utilization"`
}
