package telemetry

import (
	"context"
	"strconv"

	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/shared"
)

// MetricsEventHandler turns domain events into counter increments
type MetricsEventHandler struct {
	metrics *Metrics
}

// NewMetricsEventHandler creates a handler feeding m
func NewMetricsEventHandler(m *Metrics) *MetricsEventHandler {
	return &MetricsEventHandler{metrics: m}
}

// EventTypes implements shared.EventHandler
func (h *MetricsEventHandler) EventTypes() []string {
	return []string{
		manufacturing.EventTypeOrderCreated,
		manufacturing.EventTypeOrderCompleted,
		inventory.EventTypeStockDeducted,
		inventory.EventTypeStockAdjusted,
		inventory.EventTypeLowStock,
		inventory.EventTypeOutOfStock,
	}
}

// Handle implements shared.EventHandler
func (h *MetricsEventHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	m := h.metrics
	switch e := evt.(type) {
	case *manufacturing.OrderCreatedEvent:
		m.ordersCreated.WithLabelValues(strconv.FormatBool(e.ProcessMatched)).Inc()
		m.requirementsGaps.Add(float64(e.SkippedItems))
	case *manufacturing.OrderCompletedEvent:
		m.ordersCompleted.Inc()
	case *inventory.StockDeductedEvent:
		if e.Amount.IsPositive() {
			m.materialDeducted.WithLabelValues(e.SKU).Add(e.Amount.InexactFloat64())
		}
	case *inventory.StockAdjustedEvent:
		m.stockAdjustments.WithLabelValues(e.Source).Inc()
	case *inventory.LowStockEvent:
		m.stockAlerts.WithLabelValues("low_stock").Inc()
	case *inventory.OutOfStockEvent:
		m.stockAlerts.WithLabelValues("out_of_stock").Inc()
	}
	return nil
}

var _ shared.EventHandler = (*MetricsEventHandler)(nil)
