package inventory

import (
	"strings"

	"github.com/protrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Group classifies an inventory item by how it is consumed in production
type Group string

const (
	GroupRawMaterial     Group = "Raw Material"
	GroupPackingMaterial Group = "Packing Material"
)

// IsValid reports whether g is a known group
func (g Group) IsValid() bool {
	return g == GroupRawMaterial || g == GroupPackingMaterial
}

// StockStatus is the stored availability of an item.
// It is always derived from the quantity, see StatusFor.
type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

// DisplayStatus is the three-way availability shown on inventory views.
type DisplayStatus string

const (
	DisplayInStock    DisplayStatus = "IN STOCK"
	DisplayLowStock   DisplayStatus = "LOW STOCK"
	DisplayOutOfStock DisplayStatus = "OUT OF STOCK"
)

// InventoryItem is a stocked material.
// Items are values: every mutation returns a modified copy so that snapshots
// held by readers never change underneath them.
type InventoryItem struct {
	ID           string
	Name         string
	SKU          string
	Group        Group
	Quantity     decimal.Decimal // may go negative after a deduction
	Unit         string
	ReorderLevel decimal.Decimal
	Status       StockStatus
}

// NewInventoryItem creates an item with its status derived from quantity
func NewInventoryItem(id, name, sku string, group Group, quantity decimal.Decimal, unit string, reorderLevel decimal.Decimal) (InventoryItem, error) {
	if shared.IsBlank(id) {
		return InventoryItem{}, shared.NewInvalidInputError("inventory item id cannot be empty")
	}
	if shared.IsBlank(name) {
		return InventoryItem{}, shared.NewInvalidInputError("inventory item name cannot be empty")
	}
	if shared.IsBlank(sku) {
		return InventoryItem{}, shared.NewInvalidInputError("inventory item SKU cannot be empty")
	}
	if !group.IsValid() {
		return InventoryItem{}, shared.NewInvalidInputError("unknown inventory group %q", group)
	}
	if reorderLevel.IsNegative() {
		return InventoryItem{}, shared.NewInvalidInputError("reorder level cannot be negative")
	}

	return InventoryItem{
		ID:           id,
		Name:         strings.TrimSpace(name),
		SKU:          strings.TrimSpace(sku),
		Group:        group,
		Quantity:     quantity,
		Unit:         strings.TrimSpace(unit),
		ReorderLevel: reorderLevel,
		Status:       StatusFor(quantity),
	}, nil
}

// StatusFor returns InStock when quantity > 0 and OutOfStock otherwise
func StatusFor(quantity decimal.Decimal) StockStatus {
	if quantity.IsPositive() {
		return StatusInStock
	}
	return StatusOutOfStock
}

// WithQuantity returns a copy holding quantity, with the status recomputed
func (i InventoryItem) WithQuantity(quantity decimal.Decimal) InventoryItem {
	i.Quantity = quantity
	i.Status = StatusFor(quantity)
	return i
}

// Deduct returns a copy with amount subtracted. There is no floor at zero.
func (i InventoryItem) Deduct(amount decimal.Decimal) InventoryItem {
	return i.WithQuantity(i.Quantity.Sub(amount))
}

// IsLowStock reports whether quantity <= reorder level.
// Out-of-stock items with a non-negative reorder level are always low.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.ReorderLevel)
}

// DisplayStatus returns the view-level availability
func (i InventoryItem) DisplayStatus() DisplayStatus {
	switch {
	case !i.Quantity.IsPositive():
		return DisplayOutOfStock
	case i.IsLowStock():
		return DisplayLowStock
	default:
		return DisplayInStock
	}
}

// LowStock returns the items at or below their reorder level, in input order
func LowStock(items []InventoryItem) []InventoryItem {
	result := make([]InventoryItem, 0)
	for _, item := range items {
		if item.IsLowStock() {
			result = append(result, item)
		}
	}
	return result
}

// IndexOf returns the position of the item with the given id, or -1
func IndexOf(items []InventoryItem, id string) int {
	for idx := range items {
		if items[idx].ID == id {
			return idx
		}
	}
	return -1
}

// IndexOfSKU returns the position of the item with the given SKU (case-insensitive), or -1
func IndexOfSKU(items []InventoryItem, sku string) int {
	for idx := range items {
		if strings.EqualFold(items[idx].SKU, sku) {
			return idx
		}
	}
	return -1
}
