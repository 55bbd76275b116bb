package workforce

import "github.com/protrack/backend/internal/domain/workforce"

// CreateWarehouseRequest represents a request to register a warehouse
type CreateWarehouseRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Location string `json:"location" binding:"max=300"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	WorkerCount int    `json:"worker_count"`
}

// AttendanceEntry is one worker's attendance in a request
type AttendanceEntry struct {
	WorkerName string `json:"worker_name" binding:"required,max=200"`
	Status     string `json:"status" binding:"required"`
	Shift      string `json:"shift" binding:"required"`
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
}

// AddAttendanceRequest represents manual attendance entry for one warehouse
type AddAttendanceRequest struct {
	Records []AttendanceEntry `json:"records" binding:"required,min=1,max=500,dive"`
}

// AttendanceResponse represents an attendance record in API responses
type AttendanceResponse struct {
	ID          string `json:"id"`
	WarehouseID string `json:"warehouse_id"`
	WorkerName  string `json:"worker_name"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	Shift       string `json:"shift"`
}

// ImportRowError is an attendance row that was rejected
type ImportRowError struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ImportAttendanceResponse summarizes an attendance sheet import
type ImportAttendanceResponse struct {
	Imported    int              `json:"imported"`
	Errors      []ImportRowError `json:"errors"`
	TotalErrors int              `json:"total_errors,omitempty"`
	IsTruncated bool             `json:"is_truncated,omitempty"`
	ArchiveKey  string           `json:"archive_key,omitempty"`
}

// ToWarehouseResponse converts a domain warehouse to a response DTO
func ToWarehouseResponse(w workforce.Warehouse) WarehouseResponse {
	return WarehouseResponse{ID: w.ID, Name: w.Name, Location: w.Location, WorkerCount: w.WorkerCount}
}

// ToAttendanceResponse converts a domain record to a response DTO
func ToAttendanceResponse(r workforce.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:          r.ID,
		WarehouseID: r.WarehouseID,
		WorkerName:  r.WorkerName,
		Date:        r.Date.Format("2006-01-02"),
		Status:      string(r.Status),
		Shift:       string(r.Shift),
	}
}

// ToAttendanceResponses converts a slice of records
func ToAttendanceResponses(records []workforce.AttendanceRecord) []AttendanceResponse {
	out := make([]AttendanceResponse, len(records))
	for i, r := range records {
		out[i] = ToAttendanceResponse(r)
	}
	return out
}
