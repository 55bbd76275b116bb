package router

import (
	"github.com/gin-gonic/gin"
	"github.com/protrack/backend/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup registers all routes under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup collects the routes of one domain under a common prefix
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("GET", path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("POST", path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("PUT", path, handlers)
}

// PATCH registers a PATCH route
func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("PATCH", path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle("DELETE", path, handlers)
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Handlers bundles every API handler
type Handlers struct {
	Orders     *handler.OrderHandler
	Inventory  *handler.InventoryHandler
	Processes  *handler.ProcessHandler
	Resources  *handler.ResourceHandler
	Transports *handler.TransportHandler
	Quality    *handler.QualityHandler
	Warehouses *handler.WarehouseHandler
	Planner    *handler.PlannerHandler
	Dashboard  *handler.DashboardHandler
}

// DomainGroups returns the route groups of the API
func DomainGroups(h Handlers) []RouteRegistrar {
	orders := NewDomainGroup("orders", "/orders").
		GET("", h.Orders.List).
		GET("/:id", h.Orders.Get).
		POST("", h.Orders.Create)

	inventory := NewDomainGroup("inventory", "/inventory").
		GET("", h.Inventory.List).
		GET("/low-stock", h.Inventory.LowStock).
		POST("/sync", h.Inventory.Sync).
		GET("/:id", h.Inventory.Get).
		POST("", h.Inventory.Create).
		PUT("/:id", h.Inventory.Update).
		DELETE("/:id", h.Inventory.Delete)

	processes := NewDomainGroup("processes", "/processes").
		GET("", h.Processes.List).
		POST("", h.Processes.Create).
		DELETE("/:id", h.Processes.Delete)

	resources := NewDomainGroup("resources", "/resources").
		GET("", h.Resources.List).
		PATCH("/:id/status", h.Resources.UpdateStatus)

	transports := NewDomainGroup("transports", "/transports").
		GET("", h.Transports.List).
		GET("/summary", h.Transports.Summary).
		POST("", h.Transports.Add)

	quality := NewDomainGroup("quality", "/quality").
		GET("/summary", h.Quality.Summary)
	quality.Group("raw-samples", "/raw-samples").
		GET("", h.Quality.ListRaw).
		POST("", h.Quality.AddRaw).
		PATCH("/:id/status", h.Quality.UpdateRawStatus)
	quality.Group("gov-samples", "/gov-samples").
		GET("", h.Quality.ListGov).
		POST("", h.Quality.AddGov).
		PATCH("/:id/status", h.Quality.UpdateGovStatus)

	warehouses := NewDomainGroup("warehouses", "/warehouses").
		GET("", h.Warehouses.List).
		POST("", h.Warehouses.Create).
		GET("/:id/attendance", h.Warehouses.ListAttendance).
		POST("/:id/attendance", h.Warehouses.AddAttendance).
		POST("/:id/attendance/import", h.Warehouses.ImportAttendance)

	planner := NewDomainGroup("planner", "/planner").
		POST("/optimizations", h.Planner.Optimizations).
		POST("/schedule", h.Planner.PredictSchedule).
		POST("/chat", h.Planner.Chat)

	dashboard := NewDomainGroup("dashboard", "/dashboard").
		GET("/stats", h.Dashboard.Stats)

	return []RouteRegistrar{orders, inventory, processes, resources, transports, quality, warehouses, planner, dashboard}
}
