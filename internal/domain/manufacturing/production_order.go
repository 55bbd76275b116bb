package manufacturing

import (
	"fmt"
	"strings"
	"time"

	"github.com/protrack/backend/internal/domain/shared"
)

// OrderStatus is the lifecycle state of a production order
type OrderStatus string

const (
	OrderStatusPlanning     OrderStatus = "Planning"
	OrderStatusQueued       OrderStatus = "Queued"
	OrderStatusInProgress   OrderStatus = "In Progress"
	OrderStatusQualityCheck OrderStatus = "Quality Check"
	OrderStatusCompleted    OrderStatus = "Completed"
	OrderStatusDelayed      OrderStatus = "Delayed"
)

// AllOrderStatuses lists the statuses in display order
var AllOrderStatuses = []OrderStatus{
	OrderStatusPlanning,
	OrderStatusQueued,
	OrderStatusInProgress,
	OrderStatusQualityCheck,
	OrderStatusCompleted,
	OrderStatusDelayed,
}

// IsValid reports whether s is a known status
func (s OrderStatus) IsValid() bool {
	for _, known := range AllOrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Priority of a production order
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// IsValid reports whether p is a known priority
func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// MaxProgress is the progress value at which an order is complete
const MaxProgress = 100

// DateLayout is the calendar-date format used for order dates
const DateLayout = "2006-01-02"

// ProductionOrder is a batch of a finished product moving through the shop floor
type ProductionOrder struct {
	ID          string
	OrderNumber string
	ProductName string
	Quantity    int64
	StartDate   time.Time
	EndDate     time.Time
	Status      OrderStatus
	Priority    Priority
	Progress    int
}

// NewOrderParams carries the user-supplied fields of a new order
type NewOrderParams struct {
	ProductName string
	Quantity    int64
	StartDate   time.Time
	EndDate     time.Time
	Priority    Priority
	Status      OrderStatus
}

// NewProductionOrder creates an order with a fresh id and order number.
// Status defaults to Queued and priority to Medium; progress starts at 0.
func NewProductionOrder(params NewOrderParams, now time.Time) (ProductionOrder, error) {
	if shared.IsBlank(params.ProductName) {
		return ProductionOrder{}, shared.NewInvalidInputError("product name cannot be empty")
	}
	if params.Quantity <= 0 {
		return ProductionOrder{}, shared.NewInvalidInputError("quantity must be positive")
	}
	if !params.EndDate.IsZero() && !params.StartDate.IsZero() && params.EndDate.Before(params.StartDate) {
		return ProductionOrder{}, shared.NewInvalidInputError("end date cannot be before start date")
	}

	status := params.Status
	if status == "" {
		status = OrderStatusQueued
	}
	if !status.IsValid() {
		return ProductionOrder{}, shared.NewInvalidInputError("unknown order status %q", status)
	}
	priority := params.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		return ProductionOrder{}, shared.NewInvalidInputError("unknown priority %q", priority)
	}

	progress := 0
	if status == OrderStatusCompleted {
		progress = MaxProgress
	}

	return ProductionOrder{
		ID:          shared.NewID(),
		OrderNumber: GenerateOrderNumber(now),
		ProductName: strings.TrimSpace(params.ProductName),
		Quantity:    params.Quantity,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Status:      status,
		Priority:    priority,
		Progress:    progress,
	}, nil
}

// GenerateOrderNumber returns ORD- followed by the last four digits of the unix millisecond clock
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%04d", now.UnixMilli()%10000)
}

// Matches reports whether the order matches a case-insensitive search term
// (product name or order number) and a status filter. An empty status or
// "All" matches every status.
func (o ProductionOrder) Matches(search string, status string) bool {
	if status != "" && status != "All" && string(o.Status) != status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.ProductName), term) ||
		strings.Contains(strings.ToLower(o.OrderNumber), term)
}

// IndexOfOrder returns the position of the order with the given id, or -1
func IndexOfOrder(orders []ProductionOrder, id string) int {
	for idx := range orders {
		if orders[idx].ID == id {
			return idx
		}
	}
	return -1
}
