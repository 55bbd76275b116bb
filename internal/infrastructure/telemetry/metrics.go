package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pcp"

// Metrics holds the Prometheus collectors exposed on /metrics. Each instance
// owns its registry so tests can create as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	ordersCreated     *prometheus.CounterVec
	ordersCompleted   prometheus.Counter
	materialDeducted  *prometheus.CounterVec
	requirementsGaps  prometheus.Counter
	stockAlerts       *prometheus.CounterVec
	stockAdjustments  *prometheus.CounterVec
	tickerAdvances    prometheus.Counter
	lowStockItems     prometheus.Gauge
	activeOrders      prometheus.Gauge
	plannerRequests   *prometheus.CounterVec
	plannerLatency    *prometheus.HistogramVec
	stateSaveFailures prometheus.Counter
}

// NewMetrics registers every collector plus the Go runtime and process
// collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "production", Name: "orders_created_total",
			Help: "Production orders created, split by whether a process matched.",
		}, []string{"process_matched"}),
		ordersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "production", Name: "orders_completed_total",
			Help: "Production orders that reached 100% progress.",
		}),
		materialDeducted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "inventory", Name: "material_deducted_total",
			Help: "Material quantity consumed by production orders, by SKU.",
		}, []string{"sku"}),
		requirementsGaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "inventory", Name: "skipped_requirements_total",
			Help: "Bill of material lines skipped because the item does not exist.",
		}),
		stockAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "inventory", Name: "stock_alerts_total",
			Help: "Low stock and out of stock transitions.",
		}, []string{"kind"}),
		stockAdjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "inventory", Name: "stock_adjustments_total",
			Help: "Direct quantity changes by source.",
		}, []string{"source"}),
		tickerAdvances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "production", Name: "progress_advances_total",
			Help: "Order progress increments applied by the simulated ticker.",
		}),
		lowStockItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "inventory", Name: "low_stock_items",
			Help: "Items at or below their reorder level.",
		}),
		activeOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "production", Name: "active_orders",
			Help: "Orders currently In Progress.",
		}),
		plannerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "planner", Name: "requests_total",
			Help: "Planner assistant calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		plannerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "planner", Name: "request_duration_seconds",
			Help:    "Planner assistant latency by operation.",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"operation"}),
		stateSaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "state", Name: "save_failures_total",
			Help: "Write-through saves to the state store that failed.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.ordersCreated, m.ordersCompleted,
		m.materialDeducted, m.requirementsGaps, m.stockAlerts, m.stockAdjustments,
		m.tickerAdvances, m.lowStockItems, m.activeOrders,
		m.plannerRequests, m.plannerLatency,
		m.stateSaveFailures,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// GinMiddleware records request count and latency per matched route.
// Unmatched routes are grouped under "unmatched" to bound cardinality.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObservePlanner records one planner call
func (m *Metrics) ObservePlanner(operation, outcome string, elapsed time.Duration) {
	m.plannerRequests.WithLabelValues(operation, outcome).Inc()
	m.plannerLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveTick records the number of orders advanced by one ticker run
func (m *Metrics) ObserveTick(advanced int) {
	m.tickerAdvances.Add(float64(advanced))
}

// SetInventoryGauges refreshes the point-in-time gauges
func (m *Metrics) SetInventoryGauges(lowStock, activeOrders int) {
	m.lowStockItems.Set(float64(lowStock))
	m.activeOrders.Set(float64(activeOrders))
}

// StateSaveFailed counts a failed write-through save
func (m *Metrics) StateSaveFailed() {
	m.stateSaveFailures.Inc()
}
