package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_GinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/api/v1/orders/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders/ord-1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/orders/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObservePlanner("optimizations", "ok", 1200*time.Millisecond)
	m.SetInventoryGauges(3, 2)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `pcp_planner_requests_total{operation="optimizations",outcome="ok"} 1`)
	assert.Contains(t, string(body), "pcp_inventory_low_stock_items 3")
	assert.Contains(t, string(body), "pcp_production_active_orders 2")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMetricsEventHandler(t *testing.T) {
	m := NewMetrics()
	h := NewMetricsEventHandler(m)
	ctx := context.Background()

	before, err := inventory.NewInventoryItem("inv-1", "Sugar", "RM-SUG", inventory.GroupRawMaterial,
		decimal.NewFromInt(15000), "kg", decimal.NewFromInt(1000))
	require.NoError(t, err)
	after := before.Deduct(decimal.NewFromInt(5000))

	order, err := manufacturing.NewProductionOrder(manufacturing.NewOrderParams{
		ProductName: "Cola", Quantity: 100,
	}, time.Now())
	require.NoError(t, err)

	report := manufacturing.DeductionReport{
		ProcessMatched: true,
		Skipped:        []manufacturing.SkippedRequirement{{ItemID: "ghost"}},
	}

	require.NoError(t, h.Handle(ctx, manufacturing.NewOrderCreatedEvent(order, report)))
	require.NoError(t, h.Handle(ctx, inventory.NewStockDeductedEvent(before, after, order.ID)))
	require.NoError(t, h.Handle(ctx, inventory.NewOutOfStockEvent(after)))
	require.NoError(t, h.Handle(ctx, inventory.NewStockAdjustedEvent(before, after, "erp_sync")))
	require.NoError(t, h.Handle(ctx, manufacturing.NewOrderCompletedEvent(order)))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersCreated.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requirementsGaps))
	assert.Equal(t, 5000.0, testutil.ToFloat64(m.materialDeducted.WithLabelValues("RM-SUG")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockAlerts.WithLabelValues("out_of_stock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockAdjustments.WithLabelValues("erp_sync")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersCompleted))
	assert.Len(t, h.EventTypes(), 6)
}
