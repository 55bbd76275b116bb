package models

import (
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for a stocked material
type InventoryItemModel struct {
	BaseModel
	Name         string          `gorm:"type:varchar(200);not null"`
	SKU          string          `gorm:"column:sku;type:varchar(64);not null;index"`
	Group        string          `gorm:"column:item_group;type:varchar(32);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit         string          `gorm:"type:varchar(16);not null"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status       string          `gorm:"type:varchar(16);not null"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the model to a domain item.
// The stored status is ignored and re-derived from the quantity.
func (m *InventoryItemModel) ToDomain() inventory.InventoryItem {
	return inventory.InventoryItem{
		ID:           m.ID,
		Name:         m.Name,
		SKU:          m.SKU,
		Group:        inventory.Group(m.Group),
		Quantity:     m.Quantity,
		Unit:         m.Unit,
		ReorderLevel: m.ReorderLevel,
		Status:       inventory.StatusFor(m.Quantity),
	}
}

// FromDomain populates the model from a domain item at the given position
func (m *InventoryItemModel) FromDomain(i inventory.InventoryItem, position int) {
	m.ID = i.ID
	m.Position = position
	m.Name = i.Name
	m.SKU = i.SKU
	m.Group = string(i.Group)
	m.Quantity = i.Quantity
	m.Unit = i.Unit
	m.ReorderLevel = i.ReorderLevel
	m.Status = string(i.Status)
}
