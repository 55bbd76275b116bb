package models

import (
	"time"

	"github.com/protrack/backend/internal/domain/workforce"
)

// WarehouseModel is the persistence model for a warehouse
type WarehouseModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null"`
	Location    string `gorm:"type:varchar(200)"`
	WorkerCount int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the model to a domain warehouse
func (m *WarehouseModel) ToDomain() workforce.Warehouse {
	return workforce.Warehouse{
		ID:          m.ID,
		Name:        m.Name,
		Location:    m.Location,
		WorkerCount: m.WorkerCount,
	}
}

// FromDomain populates the model from a domain warehouse
func (m *WarehouseModel) FromDomain(w workforce.Warehouse, position int) {
	m.ID = w.ID
	m.Position = position
	m.Name = w.Name
	m.Location = w.Location
	m.WorkerCount = w.WorkerCount
}

// AttendanceRecordModel is the persistence model for a worker attendance row
type AttendanceRecordModel struct {
	BaseModel
	WarehouseID string     `gorm:"type:varchar(64);not null;index"`
	WorkerName  string     `gorm:"type:varchar(200);not null"`
	Date        *time.Time `gorm:"type:date"`
	Status      string     `gorm:"type:varchar(16);not null"`
	Shift       string     `gorm:"type:varchar(16);not null"`
}

// TableName returns the table name for GORM
func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}

// ToDomain converts the model to a domain record
func (m *AttendanceRecordModel) ToDomain() workforce.AttendanceRecord {
	return workforce.AttendanceRecord{
		ID:          m.ID,
		WarehouseID: m.WarehouseID,
		WorkerName:  m.WorkerName,
		Date:        timeOrZero(m.Date),
		Status:      workforce.AttendanceStatus(m.Status),
		Shift:       workforce.Shift(m.Shift),
	}
}

// FromDomain populates the model from a domain record
func (m *AttendanceRecordModel) FromDomain(r workforce.AttendanceRecord, position int) {
	m.ID = r.ID
	m.Position = position
	m.WarehouseID = r.WarehouseID
	m.WorkerName = r.WorkerName
	m.Date = nullableTime(r.Date)
	m.Status = string(r.Status)
	m.Shift = string(r.Shift)
}
