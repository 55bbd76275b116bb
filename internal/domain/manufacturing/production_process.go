package manufacturing

import (
	"strings"

	"github.com/protrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// MaterialRequirement is one bill-of-materials line: how much of an item one unit consumes
type MaterialRequirement struct {
	InventoryItemID string
	QuantityPerUnit decimal.Decimal
}

// ProductionProcess is the bill of materials for a finished product
type ProductionProcess struct {
	ID               string
	ProductName      string
	RawMaterials     []MaterialRequirement
	PackingMaterials []MaterialRequirement
}

// NewProductionProcess validates and creates a process
func NewProductionProcess(id, productName string, raw, packing []MaterialRequirement) (ProductionProcess, error) {
	if shared.IsBlank(id) {
		return ProductionProcess{}, shared.NewInvalidInputError("process id cannot be empty")
	}
	if shared.IsBlank(productName) {
		return ProductionProcess{}, shared.NewInvalidInputError("product name cannot be empty")
	}
	if len(raw)+len(packing) == 0 {
		return ProductionProcess{}, shared.NewInvalidInputError("process needs at least one material requirement")
	}
	for _, req := range append(append([]MaterialRequirement{}, raw...), packing...) {
		if shared.IsBlank(req.InventoryItemID) {
			return ProductionProcess{}, shared.NewInvalidInputError("requirement inventory item id cannot be empty")
		}
		if !req.QuantityPerUnit.IsPositive() {
			return ProductionProcess{}, shared.NewInvalidInputError("requirement for %q must have a positive quantity per unit", req.InventoryItemID)
		}
	}

	return ProductionProcess{
		ID:               id,
		ProductName:      strings.TrimSpace(productName),
		RawMaterials:     append([]MaterialRequirement{}, raw...),
		PackingMaterials: append([]MaterialRequirement{}, packing...),
	}, nil
}

// Requirements returns raw material requirements followed by packing requirements
func (p ProductionProcess) Requirements() []MaterialRequirement {
	reqs := make([]MaterialRequirement, 0, len(p.RawMaterials)+len(p.PackingMaterials))
	reqs = append(reqs, p.RawMaterials...)
	return append(reqs, p.PackingMaterials...)
}

// ItemIDs returns the distinct inventory item ids the process consumes
func (p ProductionProcess) ItemIDs() []string {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, req := range p.Requirements() {
		if !seen[req.InventoryItemID] {
			seen[req.InventoryItemID] = true
			ids = append(ids, req.InventoryItemID)
		}
	}
	return ids
}

// FindProcess returns the first process whose product name equals productName
// under Unicode case folding.
func FindProcess(processes []ProductionProcess, productName string) (ProductionProcess, bool) {
	fold := cases.Fold()
	want := fold.String(productName)
	for _, p := range processes {
		if fold.String(p.ProductName) == want {
			return p, true
		}
	}
	return ProductionProcess{}, false
}

// IndexOfProcess returns the position of the process with the given id, or -1
func IndexOfProcess(processes []ProductionProcess, id string) int {
	for idx := range processes {
		if processes[idx].ID == id {
			return idx
		}
	}
	return -1
}
