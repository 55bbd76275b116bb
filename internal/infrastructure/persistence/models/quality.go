package models

import (
	"time"

	"github.com/protrack/backend/internal/domain/quality"
)

// RawMaterialSampleModel is the persistence model for an incoming-material lab sample
type RawMaterialSampleModel struct {
	BaseModel
	MaterialName  string     `gorm:"type:varchar(200);not null"`
	BatchNumber   string     `gorm:"type:varchar(64);not null"`
	Supplier      string     `gorm:"type:varchar(200)"`
	ReceivedDate  *time.Time `gorm:"type:date"`
	TestDate      *time.Time `gorm:"type:date"`
	Status        string     `gorm:"type:varchar(16);not null"`
	LabTechnician string     `gorm:"type:varchar(200)"`
	Remarks       string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RawMaterialSampleModel) TableName() string {
	return "raw_material_samples"
}

// ToDomain converts the model to a domain sample
func (m *RawMaterialSampleModel) ToDomain() quality.RawMaterialSample {
	return quality.RawMaterialSample{
		ID:            m.ID,
		MaterialName:  m.MaterialName,
		BatchNumber:   m.BatchNumber,
		Supplier:      m.Supplier,
		ReceivedDate:  timeOrZero(m.ReceivedDate),
		TestDate:      copyTime(m.TestDate),
		Status:        quality.Status(m.Status),
		LabTechnician: m.LabTechnician,
		Remarks:       m.Remarks,
	}
}

// FromDomain populates the model from a domain sample
func (m *RawMaterialSampleModel) FromDomain(s quality.RawMaterialSample, position int) {
	m.ID = s.ID
	m.Position = position
	m.MaterialName = s.MaterialName
	m.BatchNumber = s.BatchNumber
	m.Supplier = s.Supplier
	m.ReceivedDate = nullableTime(s.ReceivedDate)
	m.TestDate = copyTime(s.TestDate)
	m.Status = string(s.Status)
	m.LabTechnician = s.LabTechnician
	m.Remarks = s.Remarks
}

// GovProductSampleModel is the persistence model for a government product sample
type GovProductSampleModel struct {
	BaseModel
	ProductName    string     `gorm:"type:varchar(200);not null"`
	OrderNumber    string     `gorm:"type:varchar(32);not null"`
	OfficialName   string     `gorm:"type:varchar(200)"`
	Department     string     `gorm:"type:varchar(200)"`
	CollectionDate *time.Time `gorm:"type:date"`
	ResultDate     *time.Time `gorm:"type:date"`
	Status         string     `gorm:"type:varchar(16);not null"`
	Remarks        string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (GovProductSampleModel) TableName() string {
	return "gov_product_samples"
}

// ToDomain converts the model to a domain sample
func (m *GovProductSampleModel) ToDomain() quality.GovProductSample {
	return quality.GovProductSample{
		ID:             m.ID,
		ProductName:    m.ProductName,
		OrderNumber:    m.OrderNumber,
		OfficialName:   m.OfficialName,
		Department:     m.Department,
		CollectionDate: timeOrZero(m.CollectionDate),
		ResultDate:     copyTime(m.ResultDate),
		Status:         quality.Status(m.Status),
		Remarks:        m.Remarks,
	}
}

// FromDomain populates the model from a domain sample
func (m *GovProductSampleModel) FromDomain(s quality.GovProductSample, position int) {
	m.ID = s.ID
	m.Position = position
	m.ProductName = s.ProductName
	m.OrderNumber = s.OrderNumber
	m.OfficialName = s.OfficialName
	m.Department = s.Department
	m.CollectionDate = nullableTime(s.CollectionDate)
	m.ResultDate = copyTime(s.ResultDate)
	m.Status = string(s.Status)
	m.Remarks = s.Remarks
}
