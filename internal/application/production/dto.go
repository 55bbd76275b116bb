package production

import (
	"time"

	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to place a production order
type CreateOrderRequest struct {
	ProductName string `json:"product_name" binding:"required,min=1,max=200"`
	Quantity    int64  `json:"quantity" binding:"required,gt=0"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Priority    string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	Status      string `json:"status" binding:"omitempty,oneof=Planning Queued 'In Progress' 'Quality Check' Completed Delayed"`

	// IdempotencyKey is taken from the Idempotency-Key header, never from the body
	IdempotencyKey string `json:"-"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search string `form:"search"`
	Status string `form:"status"`
}

// OrderResponse represents a production order in API responses
type OrderResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Progress    int    `json:"progress"`
}

// DeductionResponse is one applied bill-of-materials line
type DeductionResponse struct {
	ItemID         string          `json:"item_id"`
	Amount         decimal.Decimal `json:"amount"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	StatusAfter    string          `json:"status_after"`
}

// SkippedRequirementResponse is a bill-of-materials line that could not be applied
type SkippedRequirementResponse struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

// DeductionReportResponse describes what an order did to inventory
type DeductionReportResponse struct {
	ProcessID      string                       `json:"process_id,omitempty"`
	ProcessMatched bool                         `json:"process_matched"`
	Deductions     []DeductionResponse          `json:"deductions"`
	Skipped        []SkippedRequirementResponse `json:"skipped"`
}

// CreateOrderResponse is the created order together with its inventory effect
type CreateOrderResponse struct {
	Order     OrderResponse           `json:"order"`
	Deduction DeductionReportResponse `json:"deduction"`
}

// TickResponse summarizes one progress tick
type TickResponse struct {
	Advanced  int             `json:"advanced"`
	Completed []OrderResponse `json:"completed"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o manufacturing.ProductionOrder) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		StartDate:   formatDate(o.StartDate),
		EndDate:     formatDate(o.EndDate),
		Status:      string(o.Status),
		Priority:    string(o.Priority),
		Progress:    o.Progress,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []manufacturing.ProductionOrder) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToOrderResponse(o)
	}
	return responses
}

// ToDeductionReportResponse converts a deduction report to a response DTO
func ToDeductionReportResponse(r manufacturing.DeductionReport) DeductionReportResponse {
	resp := DeductionReportResponse{
		ProcessID:      r.ProcessID,
		ProcessMatched: r.ProcessMatched,
		Deductions:     make([]DeductionResponse, len(r.Deductions)),
		Skipped:        make([]SkippedRequirementResponse, len(r.Skipped)),
	}
	for i, d := range r.Deductions {
		resp.Deductions[i] = DeductionResponse{
			ItemID:         d.ItemID,
			Amount:         d.Amount,
			QuantityBefore: d.QuantityBefore,
			QuantityAfter:  d.QuantityAfter,
			StatusAfter:    string(d.StatusAfter),
		}
	}
	for i, s := range r.Skipped {
		resp.Skipped[i] = SkippedRequirementResponse{ItemID: s.ItemID, Reason: s.Reason}
	}
	return resp
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(manufacturing.DateLayout)
}
