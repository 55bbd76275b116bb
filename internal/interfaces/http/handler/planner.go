package handler

import (
	"github.com/gin-gonic/gin"
	plannerapp "github.com/protrack/backend/internal/application/planner"
)

// PlannerHandler handles the AI planning assistant endpoints
type PlannerHandler struct {
	BaseHandler
	plannerService *plannerapp.PlannerService
}

// NewPlannerHandler creates a new PlannerHandler
func NewPlannerHandler(plannerService *plannerapp.PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerService: plannerService}
}

// Optimizations analyses the current shop floor.
// POST /planner/optimizations
func (h *PlannerHandler) Optimizations(c *gin.Context) {
	result, err := h.plannerService.Optimizations(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// PredictSchedule proposes a window for a new batch.
// POST /planner/schedule
func (h *PlannerHandler) PredictSchedule(c *gin.Context) {
	var req plannerapp.PredictScheduleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.plannerService.PredictSchedule(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Chat continues a conversation.
// POST /planner/chat
func (h *PlannerHandler) Chat(c *gin.Context) {
	var req plannerapp.ChatRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.plannerService.Chat(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
