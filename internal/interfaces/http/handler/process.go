package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/protrack/backend/internal/application/manufacturing"
)

// ProcessHandler handles bill-of-materials endpoints
type ProcessHandler struct {
	BaseHandler
	processService *manufacturing.ProcessService
}

// NewProcessHandler creates a new ProcessHandler
func NewProcessHandler(processService *manufacturing.ProcessService) *ProcessHandler {
	return &ProcessHandler{processService: processService}
}

// List returns every process.
// GET /processes
func (h *ProcessHandler) List(c *gin.Context) {
	processes := h.processService.List(c.Request.Context())
	h.BaseHandler.List(c, processes, len(processes))
}

// Create defines the bill of materials of a product.
// POST /processes
func (h *ProcessHandler) Create(c *gin.Context) {
	var req manufacturing.CreateProcessRequest
	if !h.BindJSON(c, &req) {
		return
	}
	process, err := h.processService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, process)
}

// Delete removes a process.
// DELETE /processes/:id
func (h *ProcessHandler) Delete(c *gin.Context) {
	if err := h.processService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
