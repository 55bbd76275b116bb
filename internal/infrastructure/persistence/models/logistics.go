package models

import (
	"time"

	"github.com/protrack/backend/internal/domain/logistics"
	"github.com/shopspring/decimal"
)

// TransportEntryModel is the persistence model for a dispatch cost entry
type TransportEntryModel struct {
	BaseModel
	OrderID         string          `gorm:"type:varchar(64);not null;index"`
	TransporterName string          `gorm:"type:varchar(200);not null"`
	TransportCost   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	LoadingCost     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	UnloadingCost   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	LabourCharge    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Date            *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (TransportEntryModel) TableName() string {
	return "transport_entries"
}

// ToDomain converts the model to a domain entry
func (m *TransportEntryModel) ToDomain() logistics.TransportEntry {
	return logistics.TransportEntry{
		ID:              m.ID,
		OrderID:         m.OrderID,
		TransporterName: m.TransporterName,
		TransportCost:   m.TransportCost,
		LoadingCost:     m.LoadingCost,
		UnloadingCost:   m.UnloadingCost,
		LabourCharge:    m.LabourCharge,
		Date:            timeOrZero(m.Date),
	}
}

// FromDomain populates the model from a domain entry
func (m *TransportEntryModel) FromDomain(e logistics.TransportEntry, position int) {
	m.ID = e.ID
	m.Position = position
	m.OrderID = e.OrderID
	m.TransporterName = e.TransporterName
	m.TransportCost = e.TransportCost
	m.LoadingCost = e.LoadingCost
	m.UnloadingCost = e.UnloadingCost
	m.LabourCharge = e.LabourCharge
	m.Date = nullableTime(e.Date)
}
