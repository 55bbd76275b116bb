package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/protrack/backend/internal/application/logistics"
)

// TransportHandler handles logistics cost endpoints
type TransportHandler struct {
	BaseHandler
	transportService *logistics.TransportService
}

// NewTransportHandler creates a new TransportHandler
func NewTransportHandler(transportService *logistics.TransportService) *TransportHandler {
	return &TransportHandler{transportService: transportService}
}

// List returns entries newest first.
// GET /transports
func (h *TransportHandler) List(c *gin.Context) {
	entries := h.transportService.List(c.Request.Context())
	h.BaseHandler.List(c, entries, len(entries))
}

// Summary returns total and average spend.
// GET /transports/summary
func (h *TransportHandler) Summary(c *gin.Context) {
	h.Success(c, h.transportService.Summary(c.Request.Context()))
}

// Add records the costs of a shipment.
// POST /transports
func (h *TransportHandler) Add(c *gin.Context) {
	var req logistics.AddTransportRequest
	if !h.BindJSON(c, &req) {
		return
	}
	entry, err := h.transportService.Add(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}
