package models

// Teacher represents an instructor available to the scheduling run.
// MaxDailySessions and MaxWeeklySessions are soft workload limits: exceeding
// them lowers fitness but never blocks a placement.
type Teacher struct {
	ID                string `json:"id"`
	FullName          string `json:"full_name,omitempty"`
	MaxDailySessions  int    `json:"max_daily_sessions,omitempty"`
	MaxWeeklySessions int    `json:"max_weekly_sessions,omitempty"`
}
