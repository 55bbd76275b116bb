package ai

import (
	"context"

	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/planner"
	"github.com/protrack/backend/internal/domain/resource"
)

// UnavailablePlanner answers every call with an unavailable error.
// It stands in when no API key is configured.
type UnavailablePlanner struct{}

var _ planner.Planner = UnavailablePlanner{}

func (UnavailablePlanner) GetOptimizations(context.Context, []manufacturing.ProductionOrder, []resource.Resource, []inventory.InventoryItem) (planner.Optimizations, error) {
	return planner.Optimizations{}, planner.NewError(OpOptimizations, planner.KindUnavailable, planner.ErrNotConfigured)
}

func (UnavailablePlanner) PredictSchedule(context.Context, string, int64, []manufacturing.ProductionOrder) (planner.SchedulePrediction, error) {
	return planner.SchedulePrediction{}, planner.NewError(OpPredictSchedule, planner.KindUnavailable, planner.ErrNotConfigured)
}

func (UnavailablePlanner) Chat(context.Context, []planner.ChatMessage, string) (string, error) {
	return "", planner.NewError(OpChat, planner.KindUnavailable, planner.ErrNotConfigured)
}
