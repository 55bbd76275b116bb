package models

import "github.com/protrack/backend/internal/domain/resource"

// ResourceModel is the persistence model for a shop-floor resource
type ResourceModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null"`
	Type        string `gorm:"type:varchar(16);not null"`
	Utilization int    `gorm:"not null;default:0"`
	Status      string `gorm:"type:varchar(16);not null"`
}

// TableName returns the table name for GORM
func (ResourceModel) TableName() string {
	return "resources"
}

// ToDomain converts the model to a domain resource
func (m *ResourceModel) ToDomain() resource.Resource {
	return resource.Resource{
		ID:          m.ID,
		Name:        m.Name,
		Type:        resource.Type(m.Type),
		Utilization: m.Utilization,
		Status:      resource.Status(m.Status),
	}
}

// FromDomain populates the model from a domain resource
func (m *ResourceModel) FromDomain(r resource.Resource, position int) {
	m.ID = r.ID
	m.Position = position
	m.Name = r.Name
	m.Type = string(r.Type)
	m.Utilization = r.Utilization
	m.Status = string(r.Status)
}
