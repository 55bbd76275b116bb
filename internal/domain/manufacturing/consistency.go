package manufacturing

import (
	"slices"

	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// SkipReasonItemNotFound marks a requirement whose inventory item does not exist
const SkipReasonItemNotFound = "item_not_found"

// Deduction records one applied material consumption
type Deduction struct {
	ItemID         string
	Amount         decimal.Decimal
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	StatusAfter    inventory.StockStatus
}

// SkippedRequirement records a requirement that could not be applied
type SkippedRequirement struct {
	ItemID string
	Reason string
}

// DeductionReport describes what ApplyOrder did to the inventory
type DeductionReport struct {
	OrderID        string
	ProcessID      string
	ProcessMatched bool
	Deductions     []Deduction
	Skipped        []SkippedRequirement
}

// HasGaps reports whether the order consumed nothing or some requirements were skipped
func (r DeductionReport) HasGaps() bool {
	return !r.ProcessMatched || len(r.Skipped) > 0
}

// ApplyOrder consumes the bill of materials for order from items.
//
// The first process whose product name matches the order (case-insensitively)
// is used. Each raw requirement and then each packing requirement deducts
// quantityPerUnit * order.Quantity from its item and recomputes the item's
// status. Quantities are not floored at zero. Requirements naming unknown
// items are skipped, and an order with no matching process leaves inventory
// untouched. items is never modified; the returned slice is a new snapshot.
func ApplyOrder(order ProductionOrder, items []inventory.InventoryItem, processes []ProductionProcess) ([]inventory.InventoryItem, DeductionReport) {
	next := slices.Clone(items)
	report := DeductionReport{
		OrderID:    order.ID,
		Deductions: make([]Deduction, 0),
		Skipped:    make([]SkippedRequirement, 0),
	}

	process, ok := FindProcess(processes, order.ProductName)
	if !ok {
		return next, report
	}
	report.ProcessID = process.ID
	report.ProcessMatched = true

	units := decimal.NewFromInt(order.Quantity)
	for _, req := range process.Requirements() {
		idx := inventory.IndexOf(next, req.InventoryItemID)
		if idx < 0 {
			report.Skipped = append(report.Skipped, SkippedRequirement{
				ItemID: req.InventoryItemID,
				Reason: SkipReasonItemNotFound,
			})
			continue
		}

		before := next[idx]
		amount := req.QuantityPerUnit.Mul(units)
		after := before.Deduct(amount)
		next[idx] = after

		report.Deductions = append(report.Deductions, Deduction{
			ItemID:         after.ID,
			Amount:         amount,
			QuantityBefore: before.Quantity,
			QuantityAfter:  after.Quantity,
			StatusAfter:    after.Status,
		})
	}

	return next, report
}
