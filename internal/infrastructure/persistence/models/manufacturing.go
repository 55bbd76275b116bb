package models

import (
	"time"

	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/shopspring/decimal"
)

// ProductionOrderModel is the persistence model for a production order
type ProductionOrderModel struct {
	BaseModel
	OrderNumber string     `gorm:"type:varchar(32);not null;index"`
	ProductName string     `gorm:"type:varchar(200);not null"`
	Quantity    int64      `gorm:"not null"`
	StartDate   *time.Time `gorm:"type:date"`
	EndDate     *time.Time `gorm:"type:date"`
	Status      string     `gorm:"type:varchar(32);not null"`
	Priority    string     `gorm:"type:varchar(16);not null"`
	Progress    int        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductionOrderModel) TableName() string {
	return "production_orders"
}

// ToDomain converts the model to a domain order
func (m *ProductionOrderModel) ToDomain() manufacturing.ProductionOrder {
	return manufacturing.ProductionOrder{
		ID:          m.ID,
		OrderNumber: m.OrderNumber,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		StartDate:   timeOrZero(m.StartDate),
		EndDate:     timeOrZero(m.EndDate),
		Status:      manufacturing.OrderStatus(m.Status),
		Priority:    manufacturing.Priority(m.Priority),
		Progress:    m.Progress,
	}
}

// FromDomain populates the model from a domain order at the given position
func (m *ProductionOrderModel) FromDomain(o manufacturing.ProductionOrder, position int) {
	m.ID = o.ID
	m.Position = position
	m.OrderNumber = o.OrderNumber
	m.ProductName = o.ProductName
	m.Quantity = o.Quantity
	m.StartDate = nullableTime(o.StartDate)
	m.EndDate = nullableTime(o.EndDate)
	m.Status = string(o.Status)
	m.Priority = string(o.Priority)
	m.Progress = o.Progress
}

// Material kinds stored in process_materials.kind
const (
	MaterialKindRaw     = "raw"
	MaterialKindPacking = "packing"
)

// ProductionProcessModel is the persistence model for a bill of materials
type ProductionProcessModel struct {
	BaseModel
	ProductName string                 `gorm:"type:varchar(200);not null"`
	Materials   []ProcessMaterialModel `gorm:"foreignKey:ProcessID;references:ID"`
}

// TableName returns the table name for GORM
func (ProductionProcessModel) TableName() string {
	return "production_processes"
}

// ProcessMaterialModel is one requirement line of a process
type ProcessMaterialModel struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"`
	ProcessID       string          `gorm:"type:varchar(64);not null;index"`
	Kind            string          `gorm:"type:varchar(16);not null"`
	Seq             int             `gorm:"not null"`
	InventoryItemID string          `gorm:"type:varchar(64);not null"`
	QuantityPerUnit decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ProcessMaterialModel) TableName() string {
	return "process_materials"
}

// ToDomain converts the model and its loaded materials to a domain process.
// Materials are expected in (kind, seq) order.
func (m *ProductionProcessModel) ToDomain() manufacturing.ProductionProcess {
	p := manufacturing.ProductionProcess{
		ID:               m.ID,
		ProductName:      m.ProductName,
		RawMaterials:     make([]manufacturing.MaterialRequirement, 0),
		PackingMaterials: make([]manufacturing.MaterialRequirement, 0),
	}
	for _, mat := range m.Materials {
		req := manufacturing.MaterialRequirement{
			InventoryItemID: mat.InventoryItemID,
			QuantityPerUnit: mat.QuantityPerUnit,
		}
		if mat.Kind == MaterialKindPacking {
			p.PackingMaterials = append(p.PackingMaterials, req)
		} else {
			p.RawMaterials = append(p.RawMaterials, req)
		}
	}
	return p
}

// FromDomain populates the model and its material rows from a domain process
func (m *ProductionProcessModel) FromDomain(p manufacturing.ProductionProcess, position int) {
	m.ID = p.ID
	m.Position = position
	m.ProductName = p.ProductName
	m.Materials = make([]ProcessMaterialModel, 0, len(p.RawMaterials)+len(p.PackingMaterials))
	for seq, req := range p.RawMaterials {
		m.Materials = append(m.Materials, newMaterial(p.ID, MaterialKindRaw, seq, req))
	}
	for seq, req := range p.PackingMaterials {
		m.Materials = append(m.Materials, newMaterial(p.ID, MaterialKindPacking, seq, req))
	}
}

func newMaterial(processID, kind string, seq int, req manufacturing.MaterialRequirement) ProcessMaterialModel {
	return ProcessMaterialModel{
		ProcessID:       processID,
		Kind:            kind,
		Seq:             seq,
		InventoryItemID: req.InventoryItemID,
		QuantityPerUnit: req.QuantityPerUnit,
	}
}
