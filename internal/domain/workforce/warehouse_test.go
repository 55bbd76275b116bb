package workforce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWarehouse(t *testing.T) {
	wh, err := NewWarehouse("wh3", " North Yard ", "Ring Road")
	require.NoError(t, err)
	assert.Equal(t, "North Yard", wh.Name)
	assert.Zero(t, wh.WorkerCount)

	_, err = NewWarehouse("wh4", "", "x")
	assert.Error(t, err)
}

func TestParseAttendanceStatus(t *testing.T) {
	s, err := ParseAttendanceStatus("half day")
	require.NoError(t, err)
	assert.Equal(t, AttendanceHalfDay, s)

	_, err = ParseAttendanceStatus("sick")
	assert.Error(t, err)
}

func TestParseShift(t *testing.T) {
	s, err := ParseShift(" NIGHT ")
	require.NoError(t, err)
	assert.Equal(t, ShiftNight, s)
}

func TestForWarehouse(t *testing.T) {
	a, err := NewAttendanceRecord("a", "wh1", "John Doe", time.Now(), AttendancePresent, ShiftMorning)
	require.NoError(t, err)
	b, err := NewAttendanceRecord("b", "wh2", "Jane Smith", time.Now(), AttendanceAbsent, ShiftEvening)
	require.NoError(t, err)

	got := ForWarehouse([]AttendanceRecord{a, b}, "wh2")

	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestNewAttendanceRecord_RejectsUnknownShift(t *testing.T) {
	_, err := NewAttendanceRecord("a", "wh1", "John", time.Now(), AttendancePresent, Shift("Graveyard"))
	assert.Error(t, err)
}
