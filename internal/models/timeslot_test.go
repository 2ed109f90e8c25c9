package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayNamesRoundTrip(t *testing.T) {
	for day := Monday; day <= Sunday; day++ {
		assert.Equal(t, day, ParseDay(day.String()))
	}
	assert.Equal(t, Day(0), ParseDay("FUNDAY"))
	assert.Equal(t, "DAY_9", Day(9).String())
}

func TestTimeGridContains(t *testing.T) {
	grid := DefaultGrid()

	assert.True(t, grid.Contains(Monday, 1))
	assert.True(t, grid.Contains(Friday, 8))
	assert.False(t, grid.Contains(Saturday, 1))
	assert.False(t, grid.Contains(Monday, 0))
	assert.False(t, grid.Contains(Monday, 9))
}

func TestTimeGridCells(t *testing.T) {
	grid := TimeGrid{Days: []Day{Monday, Tuesday}, SlotsPerDay: 2}

	assert.Equal(t, 4, grid.CellCount())
	assert.Equal(t, []SlotKey{
		{Day: Monday, Slot: 1},
		{Day: Monday, Slot: 2},
		{Day: Tuesday, Slot: 1},
		{Day: Tuesday, Slot: 2},
	}, grid.Cells())
}

func TestConflictKindSeverity(t *testing.T) {
	assert.Equal(t, SeverityDoubleBooking, ConflictTeacherDoubleBooking.Severity())
	assert.Equal(t, SeverityDoubleBooking, ConflictClassroomDoubleBooking.Severity())
	assert.Equal(t, SeverityUnschedulable, ConflictUnschedulable.Severity())
	assert.Equal(t, SeverityPreferenceViolation, ConflictPreferenceViolation.Severity())
	assert.Equal(t, 0.0, ConflictKind("BOGUS").Severity())
}
