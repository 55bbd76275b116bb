package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/protrack/backend/internal/application/dashboard"
	inventoryapp "github.com/protrack/backend/internal/application/inventory"
	"github.com/protrack/backend/internal/application/logistics"
	"github.com/protrack/backend/internal/application/manufacturing"
	plannerapp "github.com/protrack/backend/internal/application/planner"
	"github.com/protrack/backend/internal/application/production"
	"github.com/protrack/backend/internal/application/quality"
	"github.com/protrack/backend/internal/application/resource"
	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/application/workforce"
	"github.com/protrack/backend/internal/infrastructure/ai"
	"github.com/protrack/backend/internal/infrastructure/cache"
	"github.com/protrack/backend/internal/infrastructure/seed"
	"github.com/protrack/backend/internal/interfaces/http/handler"
	"github.com/protrack/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	group.Group("nested", "/nested").POST("/echo", func(c *gin.Context) {
		c.String(http.StatusCreated, "echo")
	})
	r.Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/test/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v2/test/nested/echo", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("test", "/test").
		Use(func(c *gin.Context) {
			c.Header("X-Group", "test")
			c.Next()
		}).
		GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil))
	assert.Equal(t, "test", w.Header().Get("X-Group"))
	assert.Equal(t, "test", group.Name())
	assert.Equal(t, "/test", group.Prefix())
}

// newTestAPI wires the whole API over the demo dataset
func newTestAPI(t *testing.T) (*gin.Engine, *state.Controller) {
	t.Helper()
	now := func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	states := state.NewController(seed.Default())
	idem := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idem.Close() })

	h := Handlers{
		Orders:     handler.NewOrderHandler(production.NewOrderService(states, production.WithIdempotencyStore(idem, time.Hour), production.WithClock(now))),
		Inventory:  handler.NewInventoryHandler(inventoryapp.NewInventoryService(states, inventoryapp.WithClock(now))),
		Processes:  handler.NewProcessHandler(manufacturing.NewProcessService(states)),
		Resources:  handler.NewResourceHandler(resource.NewResourceService(states)),
		Transports: handler.NewTransportHandler(logistics.NewTransportService(states)),
		Quality:    handler.NewQualityHandler(quality.NewSampleService(states, now)),
		Warehouses: handler.NewWarehouseHandler(workforce.NewAttendanceService(states, workforce.WithClock(now))),
		Planner:    handler.NewPlannerHandler(plannerapp.NewPlannerService(states, ai.UnavailablePlanner{})),
		Dashboard:  handler.NewDashboardHandler(dashboard.NewDashboardService(states)),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	NewRouter(engine).Register(DomainGroups(h)...).Setup()
	return engine, states
}

type envelope struct {
	Success bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func call(t *testing.T, engine *gin.Engine, method, path string, body any, headers ...string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func TestAPI_CreateOrderDeductsInventory(t *testing.T) {
	engine, states := newTestAPI(t)

	order := map[string]any{
		"product_name": "Circuit Board A1",
		"quantity":     10,
		"start_date":   "2024-03-01",
		"end_date":     "2024-03-04",
		"priority":     "High",
		"status":       "Planning",
	}
	code, env := call(t, engine, http.MethodPost, "/api/v1/orders", order, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)

	snap := states.Snapshot()
	assert.Equal(t, "Circuit Board A1", snap.Orders[0].ProductName)
	for _, item := range snap.Inventory {
		switch item.ID {
		case "i1":
			assert.Equal(t, "14900", item.Quantity.String())
		case "i4":
			assert.Equal(t, "11950", item.Quantity.String())
		case "i3":
			assert.Equal(t, "1990", item.Quantity.String())
		}
	}

	code, env = call(t, engine, http.MethodPost, "/api/v1/orders", order, "Idempotency-Key", "k-1")
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_DUPLICATE_REQUEST", env.Error.Code)
	assert.Len(t, states.Snapshot().Orders, len(snap.Orders))
}

func TestAPI_Routes(t *testing.T) {
	engine, _ := newTestAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		code   int
	}{
		{"list orders", http.MethodGet, "/api/v1/orders?status=Completed", nil, http.StatusOK},
		{"get order", http.MethodGet, "/api/v1/orders/1", nil, http.StatusOK},
		{"missing order", http.MethodGet, "/api/v1/orders/nope", nil, http.StatusNotFound},
		{"invalid order", http.MethodPost, "/api/v1/orders", map[string]any{"quantity": -1}, http.StatusBadRequest},
		{"list inventory", http.MethodGet, "/api/v1/inventory", nil, http.StatusOK},
		{"low stock", http.MethodGet, "/api/v1/inventory/low-stock", nil, http.StatusOK},
		{"get item", http.MethodGet, "/api/v1/inventory/i2", nil, http.StatusOK},
		{"negative item quantity", http.MethodPut, "/api/v1/inventory/i1", map[string]any{"quantity": "-7"}, http.StatusBadRequest},
		{"simulated sync", http.MethodPost, "/api/v1/inventory/sync", nil, http.StatusOK},
		{"list processes", http.MethodGet, "/api/v1/processes", nil, http.StatusOK},
		{"process with unknown item", http.MethodPost, "/api/v1/processes", map[string]any{
			"product_name":  "Gearbox",
			"raw_materials": []map[string]any{{"inventory_item_id": "zz", "quantity_per_unit": "2"}},
		}, http.StatusBadRequest},
		{"resources", http.MethodGet, "/api/v1/resources", nil, http.StatusOK},
		{"resource status", http.MethodPatch, "/api/v1/resources/r3/status", map[string]any{"status": "Online"}, http.StatusOK},
		{"transports", http.MethodGet, "/api/v1/transports", nil, http.StatusOK},
		{"transport summary", http.MethodGet, "/api/v1/transports/summary", nil, http.StatusOK},
		{"raw samples", http.MethodGet, "/api/v1/quality/raw-samples", nil, http.StatusOK},
		{"raw verdict", http.MethodPatch, "/api/v1/quality/raw-samples/rs2/status", map[string]any{"status": "Pass"}, http.StatusOK},
		{"gov samples", http.MethodGet, "/api/v1/quality/gov-samples", nil, http.StatusOK},
		{"quality summary", http.MethodGet, "/api/v1/quality/summary", nil, http.StatusOK},
		{"warehouses", http.MethodGet, "/api/v1/warehouses", nil, http.StatusOK},
		{"attendance", http.MethodGet, "/api/v1/warehouses/wh1/attendance", nil, http.StatusOK},
		{"attendance unknown warehouse", http.MethodGet, "/api/v1/warehouses/nope/attendance", nil, http.StatusNotFound},
		{"planner without key", http.MethodPost, "/api/v1/planner/chat", map[string]any{"message": "hi"}, http.StatusServiceUnavailable},
		{"dashboard", http.MethodGet, "/api/v1/dashboard/stats", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := call(t, engine, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestAPI_AttendanceErrorNamesRecord(t *testing.T) {
	engine, states := newTestAPI(t)
	before := len(states.Snapshot().Attendance)

	code, env := call(t, engine, http.MethodPost, "/api/v1/warehouses/wh1/attendance", map[string]any{
		"records": []map[string]any{
			{"worker_name": "John Doe", "status": "Present", "shift": "Morning", "date": "2024-03-01"},
			{"worker_name": "Jane Smith", "status": "Sick", "shift": "Morning", "date": "2024-03-01"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.True(t, strings.HasPrefix(env.Error.Message, "record 2: "), env.Error.Message)
	assert.Len(t, states.Snapshot().Attendance, before)
}
