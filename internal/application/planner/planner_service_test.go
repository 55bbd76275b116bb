package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/planner"
	"github.com/protrack/backend/internal/domain/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPlanner struct {
	mock.Mock
}

func (m *MockPlanner) GetOptimizations(ctx context.Context, orders []manufacturing.ProductionOrder, resources []resource.Resource, items []inventory.InventoryItem) (planner.Optimizations, error) {
	args := m.Called(ctx, orders, resources, items)
	return args.Get(0).(planner.Optimizations), args.Error(1)
}

func (m *MockPlanner) PredictSchedule(ctx context.Context, productName string, quantity int64, recentHistory []manufacturing.ProductionOrder) (planner.SchedulePrediction, error) {
	args := m.Called(ctx, productName, quantity, recentHistory)
	return args.Get(0).(planner.SchedulePrediction), args.Error(1)
}

func (m *MockPlanner) Chat(ctx context.Context, history []planner.ChatMessage, message string) (string, error) {
	args := m.Called(ctx, history, message)
	return args.String(0), args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) ObservePlanner(operation, outcome string, elapsed time.Duration) {
	m.Called(operation, outcome, elapsed)
}

func testOrders(n int) []manufacturing.ProductionOrder {
	orders := make([]manufacturing.ProductionOrder, n)
	for i := range orders {
		orders[i] = manufacturing.ProductionOrder{ID: fmt.Sprintf("o%d", i), ProductName: "Gear", Quantity: int64(10 * (i + 1))}
	}
	return orders
}

func newTestService(p planner.Planner, opts ...Option) (*PlannerService, *state.Controller) {
	ctrl := state.NewController(state.State{
		Orders:    testOrders(7),
		Resources: []resource.Resource{{ID: "r1", Name: "CNC", Type: resource.TypeMachine, Utilization: 80, Status: resource.StatusOnline}},
	})
	return NewPlannerService(ctrl, p, opts...), ctrl
}

func TestPlannerService_Optimizations(t *testing.T) {
	p := new(MockPlanner)
	recorder := new(MockRecorder)
	svc, ctrl := newTestService(p, WithRecorder(recorder))
	snap := ctrl.Snapshot()

	want := planner.Optimizations{
		CriticalRisks:     []string{"Copper wire below reorder level"},
		Optimizations:     []planner.Optimization{{Title: "Rebalance", Description: "Move crew B", Impact: planner.ImpactHigh}},
		SuggestedPriority: []string{"ORD-001"},
	}
	p.On("GetOptimizations", mock.Anything, snap.Orders, snap.Resources, snap.Inventory).Return(want, nil)
	recorder.On("ObservePlanner", "optimizations", "ok", mock.Anything).Once()

	got, err := svc.Optimizations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, *got)
	p.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestPlannerService_PredictSchedule_UsesRecentHistory(t *testing.T) {
	p := new(MockPlanner)
	svc, _ := newTestService(p)

	want := planner.SchedulePrediction{StartDate: "2024-03-02", EndDate: "2024-03-09", Rationale: "Similar batches took a week"}
	p.On("PredictSchedule", mock.Anything, "Gear", int64(200), mock.MatchedBy(func(h []manufacturing.ProductionOrder) bool {
		return len(h) == DefaultHistorySize && h[0].ID == "o0" && h[4].ID == "o4"
	})).Return(want, nil)

	got, err := svc.PredictSchedule(context.Background(), PredictScheduleRequest{ProductName: "Gear", Quantity: 200})
	require.NoError(t, err)
	assert.Equal(t, want, *got)
	p.AssertExpectations(t)
}

func TestPlannerService_PredictSchedule_HistorySize(t *testing.T) {
	p := new(MockPlanner)
	svc, _ := newTestService(p, WithHistorySize(2))

	p.On("PredictSchedule", mock.Anything, "Gear", int64(1), mock.MatchedBy(func(h []manufacturing.ProductionOrder) bool {
		return len(h) == 2
	})).Return(planner.SchedulePrediction{}, nil)

	_, err := svc.PredictSchedule(context.Background(), PredictScheduleRequest{ProductName: "Gear", Quantity: 1})
	require.NoError(t, err)
	p.AssertExpectations(t)
}

func TestPlannerService_FailureLeavesStateUntouched(t *testing.T) {
	p := new(MockPlanner)
	recorder := new(MockRecorder)
	svc, ctrl := newTestService(p, WithRecorder(recorder))

	failure := planner.NewError("chat", planner.KindRateLimited, errors.New("quota"))
	p.On("Chat", mock.Anything, mock.Anything, "hello").Return("", failure)
	recorder.On("ObservePlanner", "chat", "rate_limited", mock.Anything).Once()

	_, err := svc.Chat(context.Background(), ChatRequest{Message: "hello"})
	require.Error(t, err)
	assert.Equal(t, planner.KindRateLimited, planner.KindOf(err))
	assert.Equal(t, uint64(0), ctrl.Snapshot().Version)
	recorder.AssertExpectations(t)
}

func TestPlannerService_RecordsCancellation(t *testing.T) {
	p := new(MockPlanner)
	recorder := new(MockRecorder)
	svc, _ := newTestService(p, WithRecorder(recorder))

	p.On("Chat", mock.Anything, mock.Anything, "hello").Return("", planner.NewError("chat", planner.KindUpstream, context.Canceled))
	recorder.On("ObservePlanner", "chat", "canceled", mock.Anything).Once()

	_, err := svc.Chat(context.Background(), ChatRequest{Message: "hello"})
	require.Error(t, err)
	assert.Equal(t, planner.KindCanceled, planner.KindOf(err))
	recorder.AssertExpectations(t)
}

func TestPlannerService_Chat_MapsHistory(t *testing.T) {
	p := new(MockPlanner)
	svc, _ := newTestService(p)

	expected := []planner.ChatMessage{
		{Role: planner.RoleUser, Text: "Which line is idle?"},
		{Role: planner.RoleModel, Text: "Station 4."},
	}
	p.On("Chat", mock.Anything, expected, "Why?").Return("It is under maintenance.", nil)

	resp, err := svc.Chat(context.Background(), ChatRequest{
		History: []ChatTurn{{Role: "user", Text: "Which line is idle?"}, {Role: "model", Text: "Station 4."}},
		Message: "Why?",
	})
	require.NoError(t, err)
	assert.Equal(t, "It is under maintenance.", resp.Reply)
}
