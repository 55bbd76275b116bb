package dashboard

import (
	"context"
	"testing"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/logistics"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/quality"
	"github.com/protrack/backend/internal/domain/resource"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDashboardService_Stats(t *testing.T) {
	ctrl := state.NewController(state.State{
		Version: 7,
		Orders: []manufacturing.ProductionOrder{
			{ID: "o1", Status: manufacturing.OrderStatusInProgress},
			{ID: "o2", Status: manufacturing.OrderStatusInProgress},
			{ID: "o3", Status: manufacturing.OrderStatusCompleted},
		},
		Inventory: []inventory.InventoryItem{
			{ID: "i1", Quantity: decimal.NewFromInt(5000), ReorderLevel: decimal.NewFromInt(1000)},
			{ID: "i2", Quantity: decimal.NewFromInt(10), ReorderLevel: decimal.NewFromInt(10)},
			{ID: "i3", Quantity: decimal.NewFromInt(-4), ReorderLevel: decimal.Zero},
		},
		Resources: []resource.Resource{
			{ID: "r1", Utilization: 85, Status: resource.StatusOnline},
			{ID: "r2", Utilization: 0, Status: resource.StatusMaintenance},
			{ID: "r3", Utilization: 92, Status: resource.StatusOnline},
		},
		Transports: []logistics.TransportEntry{
			{ID: "t1", TransportCost: decimal.NewFromInt(300)},
			{ID: "t2", TransportCost: decimal.NewFromInt(400), LabourCharge: decimal.NewFromInt(101)},
		},
		RawSamples: []quality.RawMaterialSample{{ID: "s1", Status: quality.StatusPending}, {ID: "s2", Status: quality.StatusPass}},
		GovSamples: []quality.GovProductSample{{ID: "g1", Status: quality.StatusPending}},
	})

	stats := NewDashboardService(ctrl).Stats(context.Background())

	assert.Equal(t, uint64(7), stats.Version)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 2, stats.ActiveOrders)
	assert.Equal(t, 1, stats.OrdersByStatus["Completed"])
	assert.Equal(t, 0, stats.OrdersByStatus["Delayed"])
	assert.Len(t, stats.OrdersByStatus, len(manufacturing.AllOrderStatuses))
	assert.Equal(t, 3, stats.TotalSKUs)
	assert.Equal(t, 2, stats.LowStockCount)
	assert.Equal(t, 2, stats.PendingQuality)
	assert.Equal(t, 3, stats.TotalSamples)
	assert.Equal(t, 2, stats.Transport.Count)
	assert.True(t, stats.Transport.TotalCost.Equal(decimal.NewFromInt(801)))
	assert.True(t, stats.Transport.AverageCost.Equal(decimal.NewFromInt(401)))
	assert.True(t, stats.AverageUtilization.Equal(decimal.NewFromInt(59)))
	assert.Equal(t, 2, stats.ResourcesByStatus["Online"])
}

func TestDashboardService_StatsEmpty(t *testing.T) {
	stats := NewDashboardService(state.NewController(state.State{})).Stats(context.Background())

	assert.Zero(t, stats.TotalOrders)
	assert.True(t, stats.AverageUtilization.IsZero())
	assert.True(t, stats.Transport.AverageCost.IsZero())
}
