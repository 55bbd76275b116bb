package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/protrack/backend/internal/application/resource"
)

// ResourceHandler handles machine, crew and station endpoints
type ResourceHandler struct {
	BaseHandler
	resourceService *resource.ResourceService
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(resourceService *resource.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// List returns every resource.
// GET /resources
func (h *ResourceHandler) List(c *gin.Context) {
	resources := h.resourceService.List(c.Request.Context())
	h.BaseHandler.List(c, resources, len(resources))
}

// UpdateStatus sets Online, Offline or Maintenance.
// PATCH /resources/:id/status
func (h *ResourceHandler) UpdateStatus(c *gin.Context) {
	var req resource.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	res, err := h.resourceService.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, res)
}
