package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/protrack/backend/internal/application/quality"
)

// QualityHandler handles the two sample registers
type QualityHandler struct {
	BaseHandler
	sampleService *quality.SampleService
}

// NewQualityHandler creates a new QualityHandler
func NewQualityHandler(sampleService *quality.SampleService) *QualityHandler {
	return &QualityHandler{sampleService: sampleService}
}

// ListRaw returns incoming material samples.
// GET /quality/raw-samples
func (h *QualityHandler) ListRaw(c *gin.Context) {
	samples := h.sampleService.ListRaw(c.Request.Context())
	h.List(c, samples, len(samples))
}

// AddRaw registers a material sample.
// POST /quality/raw-samples
func (h *QualityHandler) AddRaw(c *gin.Context) {
	var req quality.AddRawSampleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sample, err := h.sampleService.AddRaw(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sample)
}

// UpdateRawStatus records a lab verdict.
// PATCH /quality/raw-samples/:id/status
func (h *QualityHandler) UpdateRawStatus(c *gin.Context) {
	var req quality.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sample, err := h.sampleService.UpdateRawStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sample)
}

// ListGov returns regulator samples.
// GET /quality/gov-samples
func (h *QualityHandler) ListGov(c *gin.Context) {
	samples := h.sampleService.ListGov(c.Request.Context())
	h.List(c, samples, len(samples))
}

// AddGov registers a regulator sample.
// POST /quality/gov-samples
func (h *QualityHandler) AddGov(c *gin.Context) {
	var req quality.AddGovSampleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sample, err := h.sampleService.AddGov(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sample)
}

// UpdateGovStatus records a regulator verdict.
// PATCH /quality/gov-samples/:id/status
func (h *QualityHandler) UpdateGovStatus(c *gin.Context) {
	var req quality.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	sample, err := h.sampleService.UpdateGovStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sample)
}

// Summary counts all and pending samples.
// GET /quality/summary
func (h *QualityHandler) Summary(c *gin.Context) {
	h.Success(c, h.sampleService.Summary(c.Request.Context()))
}
