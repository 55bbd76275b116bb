package manufacturing

import (
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/shopspring/decimal"
)

// MaterialRequirementRequest is one bill-of-materials line in a request
type MaterialRequirementRequest struct {
	InventoryItemID string          `json:"inventory_item_id" binding:"required"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit" binding:"required"`
}

// CreateProcessRequest represents a request to define a product's bill of materials
type CreateProcessRequest struct {
	ProductName      string                       `json:"product_name" binding:"required,min=1,max=200"`
	RawMaterials     []MaterialRequirementRequest `json:"raw_materials" binding:"dive"`
	PackingMaterials []MaterialRequirementRequest `json:"packing_materials" binding:"dive"`
}

// MaterialRequirementResponse is one bill-of-materials line
type MaterialRequirementResponse struct {
	InventoryItemID string          `json:"inventory_item_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
}

// ProcessResponse represents a production process in API responses
type ProcessResponse struct {
	ID               string                        `json:"id"`
	ProductName      string                        `json:"product_name"`
	RawMaterials     []MaterialRequirementResponse `json:"raw_materials"`
	PackingMaterials []MaterialRequirementResponse `json:"packing_materials"`
}

// ToProcessResponse converts a domain process to a response DTO
func ToProcessResponse(p manufacturing.ProductionProcess) ProcessResponse {
	return ProcessResponse{
		ID:               p.ID,
		ProductName:      p.ProductName,
		RawMaterials:     toRequirementResponses(p.RawMaterials),
		PackingMaterials: toRequirementResponses(p.PackingMaterials),
	}
}

func toRequirementResponses(reqs []manufacturing.MaterialRequirement) []MaterialRequirementResponse {
	out := make([]MaterialRequirementResponse, len(reqs))
	for i, r := range reqs {
		out[i] = MaterialRequirementResponse{InventoryItemID: r.InventoryItemID, QuantityPerUnit: r.QuantityPerUnit}
	}
	return out
}

func toRequirements(reqs []MaterialRequirementRequest) []manufacturing.MaterialRequirement {
	out := make([]manufacturing.MaterialRequirement, len(reqs))
	for i, r := range reqs {
		out[i] = manufacturing.MaterialRequirement{InventoryItemID: r.InventoryItemID, QuantityPerUnit: r.QuantityPerUnit}
	}
	return out
}
