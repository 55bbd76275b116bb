package workforce

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/shared"
	"github.com/protrack/backend/internal/domain/workforce"
	"github.com/protrack/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2023, 10, 24, 8, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) (*AttendanceService, *state.Controller) {
	t.Helper()
	wh1, err := workforce.NewWarehouse("wh1", "Main Central Hub", "Section A")
	require.NoError(t, err)
	wh1.WorkerCount = 24
	wh2, err := workforce.NewWarehouse("wh2", "West Dock Storage", "Section F")
	require.NoError(t, err)
	rec, err := workforce.NewAttendanceRecord("a1", "wh2", "Sam", fixedNow, workforce.AttendancePresent, workforce.ShiftNight)
	require.NoError(t, err)

	ctrl := state.NewController(state.State{
		Warehouses: []workforce.Warehouse{wh1, wh2},
		Attendance: []workforce.AttendanceRecord{rec},
	})
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewAttendanceService(ctrl, opts...), ctrl
}

func TestAttendanceService_Warehouses(t *testing.T) {
	svc, ctrl := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateWarehouse(ctx, CreateWarehouseRequest{Name: "  North Yard ", Location: "Section Z"})
	require.NoError(t, err)
	assert.Equal(t, "North Yard", created.Name)
	assert.Equal(t, 0, created.WorkerCount)

	warehouses := svc.ListWarehouses(ctx)
	require.Len(t, warehouses, 3)
	assert.Equal(t, 24, warehouses[0].WorkerCount)
	assert.Equal(t, created.ID, ctrl.Snapshot().Warehouses[2].ID)

	_, err = svc.CreateWarehouse(ctx, CreateWarehouseRequest{Name: " "})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestAttendanceService_AddAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddAttendance(ctx, "wh1", AddAttendanceRequest{Records: []AttendanceEntry{
		{WorkerName: "John Doe", Status: "present", Shift: "morning", Date: "2023-10-24"},
		{WorkerName: "Jane Smith", Status: "Half Day", Shift: "Morning", Date: "2023-10-24"},
	}})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "Present", added[0].Status)

	records, err := svc.ListAttendance(ctx, "wh1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "John Doe", records[0].WorkerName)

	other, err := svc.ListAttendance(ctx, "wh2")
	require.NoError(t, err)
	assert.Len(t, other, 1)

	_, err = svc.ListAttendance(ctx, "wh9")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAttendanceService_AddAttendance_AllOrNothing(t *testing.T) {
	svc, ctrl := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddAttendance(ctx, "wh1", AddAttendanceRequest{Records: []AttendanceEntry{
		{WorkerName: "John Doe", Status: "Present", Shift: "Morning", Date: "2023-10-24"},
		{WorkerName: "Jane Smith", Status: "Sick", Shift: "Morning", Date: "2023-10-24"},
	}})
	require.ErrorIs(t, err, shared.ErrInvalidInput)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.True(t, strings.HasPrefix(domainErr.Message, "record 2: "), domainErr.Message)

	_, err = svc.AddAttendance(ctx, "wh9", AddAttendanceRequest{Records: []AttendanceEntry{
		{WorkerName: "John Doe", Status: "Present", Shift: "Morning", Date: "2023-10-24"},
	}})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.Len(t, ctrl.Snapshot().Attendance, 1)
}

func TestAttendanceService_ImportAttendance_CSV(t *testing.T) {
	archive := storage.NewMemoryArchive()
	svc, ctrl := newTestService(t, WithArchive(archive, "imports/"))

	csv := "Worker,Status,Shift,Date\n" +
		"John Doe,Present,Morning,2023-10-24\n" +
		",Absent,Morning,2023-10-24\n" +
		"Robert Brown,Absent,Noon,2023-10-24\n" +
		"Ann Lee,Leave,Night,24/10/2023\n" +
		"Jane Smith,Half Day,Evening,2023-10-24\n"

	resp, err := svc.ImportAttendance(context.Background(), "wh1", "attendance.csv", strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Imported)
	require.Len(t, resp.Errors, 3)
	assert.Equal(t, ImportRowError{Line: 3, Column: "worker", Message: "field 'worker' is required"}, resp.Errors[0])
	assert.Equal(t, "shift", resp.Errors[1].Column)
	assert.Equal(t, "Noon", resp.Errors[1].Value)
	assert.Equal(t, "date", resp.Errors[2].Column)

	records := workforce.ForWarehouse(ctrl.Snapshot().Attendance, "wh1")
	require.Len(t, records, 2)
	assert.Equal(t, workforce.AttendanceHalfDay, records[1].Status)

	stored, ok := archive.Get(resp.ArchiveKey)
	require.True(t, ok)
	assert.Equal(t, csv, string(stored))
}

func TestAttendanceService_ImportAttendance_XLSX(t *testing.T) {
	svc, ctrl := newTestService(t)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Worker", "Status", "Shift", "Date"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"John Doe", "Present", "Morning", "2023-10-24"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Robert Brown", "Absent", "Morning", "2023-10-24"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	resp, err := svc.ImportAttendance(context.Background(), "wh2", "register.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Imported)
	assert.Empty(t, resp.Errors)
	assert.Empty(t, resp.ArchiveKey)
	assert.Len(t, workforce.ForWarehouse(ctrl.Snapshot().Attendance, "wh2"), 3)
}

func TestAttendanceService_ImportAttendance_Rejects(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ImportAttendance(ctx, "wh9", "a.csv", strings.NewReader("worker,status,shift,date\n"))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.ImportAttendance(ctx, "wh1", "a.json", strings.NewReader("{}"))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.ImportAttendance(ctx, "wh1", "a.csv", strings.NewReader("worker,status\nJohn,Present\n"))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
