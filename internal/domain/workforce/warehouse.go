package workforce

import (
	"strings"
	"time"

	"github.com/protrack/backend/internal/domain/shared"
)

// Warehouse is a storage site with its own attendance register
type Warehouse struct {
	ID          string
	Name        string
	Location    string
	WorkerCount int
}

// NewWarehouse creates a warehouse with no registered workers
func NewWarehouse(id, name, location string) (Warehouse, error) {
	if shared.IsBlank(name) {
		return Warehouse{}, shared.NewInvalidInputError("warehouse name cannot be empty")
	}
	return Warehouse{ID: id, Name: strings.TrimSpace(name), Location: strings.TrimSpace(location)}, nil
}

// IndexOfWarehouse returns the position of the warehouse with the given id, or -1
func IndexOfWarehouse(warehouses []Warehouse, id string) int {
	for idx := range warehouses {
		if warehouses[idx].ID == id {
			return idx
		}
	}
	return -1
}

// AttendanceStatus is a worker's presence for one shift
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceHalfDay AttendanceStatus = "Half Day"
	AttendanceLeave   AttendanceStatus = "Leave"
)

// ParseAttendanceStatus accepts a status case-insensitively
func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	for _, known := range []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceHalfDay, AttendanceLeave} {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, nil
		}
	}
	return "", shared.NewInvalidInputError("unknown attendance status %q", s)
}

// Shift is a work period
type Shift string

const (
	ShiftMorning Shift = "Morning"
	ShiftEvening Shift = "Evening"
	ShiftNight   Shift = "Night"
)

// ParseShift accepts a shift case-insensitively
func ParseShift(s string) (Shift, error) {
	for _, known := range []Shift{ShiftMorning, ShiftEvening, ShiftNight} {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, nil
		}
	}
	return "", shared.NewInvalidInputError("unknown shift %q", s)
}

// AttendanceRecord is one worker's attendance for a shift on a date
type AttendanceRecord struct {
	ID          string
	WarehouseID string
	WorkerName  string
	Date        time.Time
	Status      AttendanceStatus
	Shift       Shift
}

// NewAttendanceRecord validates and creates a record
func NewAttendanceRecord(id, warehouseID, worker string, date time.Time, status AttendanceStatus, shift Shift) (AttendanceRecord, error) {
	if shared.IsBlank(warehouseID) {
		return AttendanceRecord{}, shared.NewInvalidInputError("warehouse id cannot be empty")
	}
	if shared.IsBlank(worker) {
		return AttendanceRecord{}, shared.NewInvalidInputError("worker name cannot be empty")
	}
	if _, err := ParseAttendanceStatus(string(status)); err != nil {
		return AttendanceRecord{}, err
	}
	if _, err := ParseShift(string(shift)); err != nil {
		return AttendanceRecord{}, err
	}
	return AttendanceRecord{
		ID:          id,
		WarehouseID: warehouseID,
		WorkerName:  strings.TrimSpace(worker),
		Date:        date,
		Status:      status,
		Shift:       shift,
	}, nil
}

// ForWarehouse returns the records of one warehouse, preserving order
func ForWarehouse(records []AttendanceRecord, warehouseID string) []AttendanceRecord {
	result := make([]AttendanceRecord, 0)
	for _, r := range records {
		if r.WarehouseID == warehouseID {
			result = append(result, r)
		}
	}
	return result
}
