// Package planner exposes the AI planning assistant over the current plant state.
package planner

import (
	"context"
	"time"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/planner"
	"github.com/protrack/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// DefaultHistorySize is the number of recent orders given to schedule predictions
const DefaultHistorySize = 5

const outcomeOK = "ok"

// Recorder receives the outcome of every planner call
type Recorder interface {
	ObservePlanner(operation, outcome string, elapsed time.Duration)
}

// PlannerService calls the planner with snapshots of the plant state.
// It never modifies state.
type PlannerService struct {
	states      *state.Controller
	planner     planner.Planner
	historySize int
	recorder    Recorder
	logger      *zap.Logger
}

// Option configures a PlannerService
type Option func(*PlannerService)

// WithHistorySize sets how many recent orders accompany a schedule prediction
func WithHistorySize(n int) Option {
	return func(s *PlannerService) {
		if n > 0 {
			s.historySize = n
		}
	}
}

// WithRecorder reports call outcomes, typically to metrics
func WithRecorder(r Recorder) Option {
	return func(s *PlannerService) {
		s.recorder = r
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *PlannerService) {
		s.logger = l
	}
}

// NewPlannerService creates a new PlannerService
func NewPlannerService(states *state.Controller, p planner.Planner, opts ...Option) *PlannerService {
	s := &PlannerService{
		states:      states,
		planner:     p,
		historySize: DefaultHistorySize,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Optimizations analyses the current orders, resources and inventory
func (s *PlannerService) Optimizations(ctx context.Context) (*planner.Optimizations, error) {
	snap := s.states.Snapshot()
	start := time.Now()
	result, err := s.planner.GetOptimizations(ctx, snap.Orders, snap.Resources, snap.Inventory)
	s.observe(ctx, "optimizations", start, err)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PredictSchedule proposes a window for a new batch using the most recent orders as history
func (s *PlannerService) PredictSchedule(ctx context.Context, req PredictScheduleRequest) (*planner.SchedulePrediction, error) {
	history := recentOrders(s.states.Snapshot().Orders, s.historySize)
	start := time.Now()
	result, err := s.planner.PredictSchedule(ctx, req.ProductName, req.Quantity, history)
	s.observe(ctx, "predict_schedule", start, err)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Chat continues a conversation with the planning assistant
func (s *PlannerService) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	history := make([]planner.ChatMessage, len(req.History))
	for i, turn := range req.History {
		history[i] = planner.ChatMessage{Role: planner.Role(turn.Role), Text: turn.Text}
	}
	start := time.Now()
	reply, err := s.planner.Chat(ctx, history, req.Message)
	s.observe(ctx, "chat", start, err)
	if err != nil {
		return nil, err
	}
	return &ChatResponse{Reply: reply}, nil
}

func (s *PlannerService) observe(ctx context.Context, op string, start time.Time, err error) {
	elapsed := time.Since(start)
	outcome := outcomeOK
	if err != nil {
		kind := planner.KindOf(err)
		outcome = string(kind)
		log := logger.Enrich(ctx, s.logger).Warn
		if kind == planner.KindCanceled {
			log = logger.Enrich(ctx, s.logger).Debug
		}
		log("Planner request failed",
			zap.String("operation", op),
			zap.String("kind", outcome),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	}
	if s.recorder != nil {
		s.recorder.ObservePlanner(op, outcome, elapsed)
	}
}

// recentOrders returns up to n orders from a newest-first list
func recentOrders(orders []manufacturing.ProductionOrder, n int) []manufacturing.ProductionOrder {
	if len(orders) > n {
		orders = orders[:n]
	}
	out := make([]manufacturing.ProductionOrder, len(orders))
	copy(out, orders)
	return out
}
