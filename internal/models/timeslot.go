package models

import "fmt"

// Day indexes a school day, Monday = 1 through Sunday = 7.
type Day int

const (
	Monday Day = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = map[Day]string{
	Monday:    "MONDAY",
	Tuesday:   "TUESDAY",
	Wednesday: "WEDNESDAY",
	Thursday:  "THURSDAY",
	Friday:    "FRIDAY",
	Saturday:  "SATURDAY",
	Sunday:    "SUNDAY",
}

var dayIndexes = map[string]Day{
	"MONDAY":    Monday,
	"TUESDAY":   Tuesday,
	"WEDNESDAY": Wednesday,
	"THURSDAY":  Thursday,
	"FRIDAY":    Friday,
	"SATURDAY":  Saturday,
	"SUNDAY":    Sunday,
}

// String returns the upper-case day name used across exports and logs.
func (d Day) String() string {
	if name, ok := dayNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DAY_%d", int(d))
}

// ParseDay resolves an upper-case day name back to its index, 0 when unknown.
func ParseDay(name string) Day {
	return dayIndexes[name]
}

// SlotKey identifies one cell of the weekly time grid.
type SlotKey struct {
	Day  Day `json:"day"`
	Slot int `json:"slot"`
}

// TimeGrid enumerates the cells available to a scheduling run. Slots are
// numbered 1..SlotsPerDay on every listed day.
type TimeGrid struct {
	Days        []Day `json:"days"`
	SlotsPerDay int   `json:"slots_per_day"`
}

// DefaultGrid is the standard school week: Monday-Friday, eight slots a day.
func DefaultGrid() TimeGrid {
	return TimeGrid{
		Days:        []Day{Monday, Tuesday, Wednesday, Thursday, Friday},
		SlotsPerDay: 8,
	}
}

// Contains reports whether the cell belongs to the grid.
func (g TimeGrid) Contains(day Day, slot int) bool {
	if slot < 1 || slot > g.SlotsPerDay {
		return false
	}
	for _, d := range g.Days {
		if d == day {
			return true
		}
	}
	return false
}

// Cells lists every grid cell in day-major order.
func (g TimeGrid) Cells() []SlotKey {
	cells := make([]SlotKey, 0, len(g.Days)*g.SlotsPerDay)
	for _, day := range g.Days {
		for slot := 1; slot <= g.SlotsPerDay; slot++ {
			cells = append(cells, SlotKey{Day: day, Slot: slot})
		}
	}
	return cells
}

// CellCount returns the number of cells in the grid.
func (g TimeGrid) CellCount() int {
	return len(g.Days) * g.SlotsPerDay
}
