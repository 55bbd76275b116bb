package manufacturing

import "github.com/protrack/backend/internal/domain/shared"

// Aggregate type constants
const (
	AggregateTypeProductionOrder   = "ProductionOrder"
	AggregateTypeProductionProcess = "ProductionProcess"
)

// Event type constants
const (
	EventTypeOrderCreated   = "production.order.created"
	EventTypeOrderCompleted = "production.order.completed"
)

// OrderCreatedEvent is raised when a production order is placed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber    string `json:"order_number"`
	ProductName    string `json:"product_name"`
	Quantity       int64  `json:"quantity"`
	ProcessMatched bool   `json:"process_matched"`
	SkippedItems   int    `json:"skipped_items"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order ProductionOrder, report DeductionReport) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeProductionOrder, order.ID),
		OrderNumber:     order.OrderNumber,
		ProductName:     order.ProductName,
		Quantity:        order.Quantity,
		ProcessMatched:  report.ProcessMatched,
		SkippedItems:    len(report.Skipped),
	}
}

// OrderCompletedEvent is raised when an order reaches 100% progress
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

// NewOrderCompletedEvent creates a new OrderCompletedEvent
func NewOrderCompletedEvent(order ProductionOrder) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, AggregateTypeProductionOrder, order.ID),
		OrderNumber:     order.OrderNumber,
		ProductName:     order.ProductName,
		Quantity:        order.Quantity,
	}
}
