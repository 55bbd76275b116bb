package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/protrack/backend/internal/application/production"
)

// IdempotencyKeyHeader lets clients retry order creation safely
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler handles production order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *production.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *production.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns orders newest first, filtered by search and status.
// GET /orders?search=&status=
func (h *OrderHandler) List(c *gin.Context) {
	var filter production.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	orders := h.orderService.ListOrders(c.Request.Context(), filter)
	h.BaseHandler.List(c, orders, len(orders))
}

// Get returns one order.
// GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Create records a new order and deducts its bill of materials from inventory.
// POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req production.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)

	resp, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
