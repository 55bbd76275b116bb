package inventory

import (
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// InventoryItemResponse represents an inventory item in API responses
type InventoryItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Group         string          `json:"group"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
	Status        string          `json:"status"`
	DisplayStatus string          `json:"display_status"`
	IsLowStock    bool            `json:"is_low_stock"`
}

// CreateItemRequest represents a request to register a stocked material
type CreateItemRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	SKU          string          `json:"sku" binding:"required,min=1,max=50"`
	Group        string          `json:"group" binding:"required,oneof='Raw Material' 'Packing Material'"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" binding:"max=20"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// UpdateItemRequest represents a partial update; nil fields are left unchanged
type UpdateItemRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	SKU          *string          `json:"sku" binding:"omitempty,min=1,max=50"`
	Group        *string          `json:"group" binding:"omitempty,oneof='Raw Material' 'Packing Material'"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Unit         *string          `json:"unit" binding:"omitempty,max=20"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
}

// SkippedRowResponse is a sync row that was not applied
type SkippedRowResponse struct {
	Line   int    `json:"line"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
	Value  string `json:"value,omitempty"`
}

// SyncResponse summarizes a stock synchronisation
type SyncResponse struct {
	Source      string               `json:"source"`
	Updated     int                  `json:"updated"`
	Skipped     []SkippedRowResponse `json:"skipped"`
	TotalErrors int                  `json:"total_errors,omitempty"`
	IsTruncated bool                 `json:"is_truncated,omitempty"`
	ArchiveKey  string               `json:"archive_key,omitempty"`
}

// ToInventoryItemResponse converts a domain item to a response DTO
func ToInventoryItemResponse(item inventory.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		SKU:           item.SKU,
		Group:         string(item.Group),
		Quantity:      item.Quantity,
		Unit:          item.Unit,
		ReorderLevel:  item.ReorderLevel,
		Status:        string(item.Status),
		DisplayStatus: string(item.DisplayStatus()),
		IsLowStock:    item.IsLowStock(),
	}
}

// ToInventoryItemResponses converts a slice of items
func ToInventoryItemResponses(items []inventory.InventoryItem) []InventoryItemResponse {
	responses := make([]InventoryItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToInventoryItemResponse(item)
	}
	return responses
}
