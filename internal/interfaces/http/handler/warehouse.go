package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/protrack/backend/internal/application/workforce"
)

// importFileField is the multipart field carrying an attendance sheet
const importFileField = "file"

// WarehouseHandler handles warehouses and their attendance registers
type WarehouseHandler struct {
	BaseHandler
	attendanceService *workforce.AttendanceService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(attendanceService *workforce.AttendanceService) *WarehouseHandler {
	return &WarehouseHandler{attendanceService: attendanceService}
}

// List returns every warehouse.
// GET /warehouses
func (h *WarehouseHandler) List(c *gin.Context) {
	warehouses := h.attendanceService.ListWarehouses(c.Request.Context())
	h.BaseHandler.List(c, warehouses, len(warehouses))
}

// Create adds a warehouse.
// POST /warehouses
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req workforce.CreateWarehouseRequest
	if !h.BindJSON(c, &req) {
		return
	}
	wh, err := h.attendanceService.CreateWarehouse(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, wh)
}

// ListAttendance returns the register of one warehouse.
// GET /warehouses/:id/attendance
func (h *WarehouseHandler) ListAttendance(c *gin.Context) {
	records, err := h.attendanceService.ListAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.BaseHandler.List(c, records, len(records))
}

// AddAttendance records a batch of entries; one invalid entry rejects the batch.
// POST /warehouses/:id/attendance
func (h *WarehouseHandler) AddAttendance(c *gin.Context) {
	var req workforce.AddAttendanceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	records, err := h.attendanceService.AddAttendance(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, records)
}

// ImportAttendance loads an xlsx or csv register.
// POST /warehouses/:id/attendance/import
func (h *WarehouseHandler) ImportAttendance(c *gin.Context) {
	fileHeader, err := c.FormFile(importFileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			h.BadRequest(c, "An attendance file is required")
			return
		}
		h.HandleError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	resp, err := h.attendanceService.ImportAttendance(c.Request.Context(), c.Param("id"), fileHeader.Filename, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
