// Package planner defines the contract of the AI production-planning assistant.
package planner

import (
	"context"

	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/resource"
)

// Impact of a suggested optimization
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// Optimization is one improvement proposed by the planner
type Optimization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      Impact `json:"impact"`
}

// Optimizations is the planner's analysis of the current shop floor
type Optimizations struct {
	CriticalRisks     []string       `json:"criticalRisks"`
	Optimizations     []Optimization `json:"optimizations"`
	SuggestedPriority []string       `json:"suggestedPriority"`
}

// SchedulePrediction is a proposed window for a new batch
type SchedulePrediction struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Rationale string `json:"rationale"`
}

// Role of a chat turn
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one turn of a planner conversation
type ChatMessage struct {
	Role Role
	Text string
}

// Planner is the AI collaborator used by the planning views.
// Implementations must honor ctx cancellation and return *Error on failure.
type Planner interface {
	GetOptimizations(ctx context.Context, orders []manufacturing.ProductionOrder, resources []resource.Resource, items []inventory.InventoryItem) (Optimizations, error)
	PredictSchedule(ctx context.Context, productName string, quantity int64, recentHistory []manufacturing.ProductionOrder) (SchedulePrediction, error)
	Chat(ctx context.Context, history []ChatMessage, message string) (string, error)
}
