package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/protrack/backend/internal/application/dashboard"
)

// DashboardHandler serves the overview figures
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboard.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the headline figures.
// GET /dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	h.Success(c, h.dashboardService.Stats(c.Request.Context()))
}
