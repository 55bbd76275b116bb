package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/protrack/backend/internal/application/inventory"
)

// syncFileField is the multipart field carrying an ERP export
const syncFileField = "file"

// InventoryHandler handles inventory endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// List returns every item in display order.
// GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	items := h.inventoryService.List(c.Request.Context())
	h.BaseHandler.List(c, items, len(items))
}

// LowStock returns the items at or below their reorder level.
// GET /inventory/low-stock
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items := h.inventoryService.LowStock(c.Request.Context())
	h.BaseHandler.List(c, items, len(items))
}

// Get returns one item.
// GET /inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.inventoryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create adds an item.
// POST /inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.inventoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update changes the supplied fields of an item.
// PUT /inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	var req inventoryapp.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.inventoryService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete removes an item.
// DELETE /inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.inventoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Sync applies an uploaded ERP stock export. Without a file the demo feed
// perturbs every quantity instead.
// POST /inventory/sync
func (h *InventoryHandler) Sync(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile(syncFileField)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		resp, serr := h.inventoryService.SimulateSync(ctx, nil)
		if serr != nil {
			h.HandleError(c, serr)
			return
		}
		h.Success(c, resp)
		return
	case err != nil:
		h.HandleError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	resp, err := h.inventoryService.Sync(ctx, fileHeader.Filename, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
