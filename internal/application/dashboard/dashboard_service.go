// Package dashboard aggregates the headline figures of the plant overview.
package dashboard

import (
	"context"

	"github.com/protrack/backend/internal/application/logistics"
	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/inventory"
	domainlogistics "github.com/protrack/backend/internal/domain/logistics"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/quality"
	"github.com/shopspring/decimal"
)

// StatsResponse represents the dashboard figures in API responses
type StatsResponse struct {
	Version            uint64                    `json:"version"`
	OrdersByStatus     map[string]int            `json:"orders_by_status"`
	TotalOrders        int                       `json:"total_orders"`
	ActiveOrders       int                       `json:"active_orders"`
	LowStockCount      int                       `json:"low_stock_count"`
	TotalSKUs          int                       `json:"total_skus"`
	PendingQuality     int                       `json:"pending_quality"`
	TotalSamples       int                       `json:"total_samples"`
	Transport          logistics.SummaryResponse `json:"transport"`
	AverageUtilization decimal.Decimal           `json:"average_utilization"`
	ResourcesByStatus  map[string]int            `json:"resources_by_status"`
}

// DashboardService computes read-only aggregates over the current snapshot
type DashboardService struct {
	states *state.Controller
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(states *state.Controller) *DashboardService {
	return &DashboardService{states: states}
}

// Stats returns the dashboard figures of one consistent snapshot
func (s *DashboardService) Stats(_ context.Context) StatsResponse {
	snap := s.states.Snapshot()

	byStatus := make(map[string]int, len(manufacturing.AllOrderStatuses))
	for _, status := range manufacturing.AllOrderStatuses {
		byStatus[string(status)] = 0
	}
	for _, o := range snap.Orders {
		byStatus[string(o.Status)]++
	}

	resources := make(map[string]int)
	total := decimal.Zero
	for _, r := range snap.Resources {
		resources[string(r.Status)]++
		total = total.Add(decimal.NewFromInt(int64(r.Utilization)))
	}
	avg := decimal.Zero
	if len(snap.Resources) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(snap.Resources)))).Round(1)
	}

	samples := quality.Summarize(snap.RawSamples, snap.GovSamples)

	return StatsResponse{
		Version:            snap.Version,
		OrdersByStatus:     byStatus,
		TotalOrders:        len(snap.Orders),
		ActiveOrders:       byStatus[string(manufacturing.OrderStatusInProgress)],
		LowStockCount:      len(inventory.LowStock(snap.Inventory)),
		TotalSKUs:          len(snap.Inventory),
		PendingQuality:     samples.Pending,
		TotalSamples:       samples.Total,
		Transport:          logistics.ToSummaryResponse(domainlogistics.Summarize(snap.Transports)),
		AverageUtilization: avg,
		ResourcesByStatus:  resources,
	}
}
