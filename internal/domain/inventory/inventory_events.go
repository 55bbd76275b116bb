package inventory

import (
	"github.com/protrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInventoryItem = "InventoryItem"

// Event type constants
const (
	EventTypeStockDeducted = "inventory.stock_deducted"
	EventTypeStockAdjusted = "inventory.stock_adjusted"
	EventTypeOutOfStock    = "inventory.out_of_stock"
	EventTypeLowStock      = "inventory.low_stock"
)

// StockDeductedEvent is raised when production consumes material from an item
type StockDeductedEvent struct {
	shared.BaseDomainEvent
	ItemID         string          `json:"item_id"`
	SKU            string          `json:"sku"`
	Amount         decimal.Decimal `json:"amount"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	OrderID        string          `json:"order_id"`
}

// NewStockDeductedEvent creates a new StockDeductedEvent
func NewStockDeductedEvent(before, after InventoryItem, orderID string) *StockDeductedEvent {
	return &StockDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDeducted, AggregateTypeInventoryItem, after.ID),
		ItemID:          after.ID,
		SKU:             after.SKU,
		Amount:          before.Quantity.Sub(after.Quantity),
		QuantityBefore:  before.Quantity,
		QuantityAfter:   after.Quantity,
		OrderID:         orderID,
	}
}

// StockAdjustedEvent is raised when a quantity is set directly (manual edit or ERP sync)
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	ItemID         string          `json:"item_id"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Source         string          `json:"source"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(before, after InventoryItem, source string) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, AggregateTypeInventoryItem, after.ID),
		ItemID:          after.ID,
		QuantityBefore:  before.Quantity,
		QuantityAfter:   after.Quantity,
		Source:          source,
	}
}

// OutOfStockEvent is raised when an item's status flips to OutOfStock
type OutOfStockEvent struct {
	shared.BaseDomainEvent
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
}

// NewOutOfStockEvent creates a new OutOfStockEvent
func NewOutOfStockEvent(item InventoryItem) *OutOfStockEvent {
	return &OutOfStockEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOutOfStock, AggregateTypeInventoryItem, item.ID),
		ItemID:          item.ID,
		Name:            item.Name,
		Quantity:        item.Quantity,
	}
}

// LowStockEvent is raised when an item crosses into low stock
type LowStockEvent struct {
	shared.BaseDomainEvent
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// NewLowStockEvent creates a new LowStockEvent
func NewLowStockEvent(item InventoryItem) *LowStockEvent {
	return &LowStockEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLowStock, AggregateTypeInventoryItem, item.ID),
		ItemID:          item.ID,
		Name:            item.Name,
		Quantity:        item.Quantity,
		ReorderLevel:    item.ReorderLevel,
	}
}

// TransitionEvents returns the alert events implied by moving from before to after:
// OutOfStock when the status flips, LowStock when the item crosses its reorder level.
func TransitionEvents(before, after InventoryItem) []shared.DomainEvent {
	events := make([]shared.DomainEvent, 0, 2)
	if before.Status != StatusOutOfStock && after.Status == StatusOutOfStock {
		events = append(events, NewOutOfStockEvent(after))
	}
	if !before.IsLowStock() && after.IsLowStock() {
		events = append(events, NewLowStockEvent(after))
	}
	return events
}
