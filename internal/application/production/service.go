// Package production places production orders and drives their simulated progress.
package production

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/shared"
	"github.com/protrack/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// TickerJobName is the scheduler name of the progress job
const TickerJobName = "production-progress"

// TickObserver receives the outcome of every ticker run
type TickObserver interface {
	ObserveTick(advanced int)
	SetInventoryGauges(lowStock, activeOrders int)
}

// OrderService handles production order operations
type OrderService struct {
	states      *state.Controller
	idempotency shared.IdempotencyStore
	idemTTL     time.Duration
	observer    TickObserver
	logger      *zap.Logger
	now         func() time.Time

	srcMu sync.Mutex
	src   manufacturing.IncrementSource
}

// Option configures an OrderService
type Option func(*OrderService)

// WithIdempotencyStore rejects a repeated Idempotency-Key for ttl
func WithIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) Option {
	return func(s *OrderService) {
		s.idempotency = store
		s.idemTTL = ttl
	}
}

// WithIncrementSource sets the random source used by the ticker
func WithIncrementSource(src manufacturing.IncrementSource) Option {
	return func(s *OrderService) {
		s.src = src
	}
}

// WithTickObserver reports ticker runs, typically to metrics
func WithTickObserver(o TickObserver) Option {
	return func(s *OrderService) {
		s.observer = o
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *OrderService) {
		s.logger = l
	}
}

// WithClock overrides the clock used for order numbers
func WithClock(now func() time.Time) Option {
	return func(s *OrderService) {
		s.now = now
	}
}

// NewOrderService creates a new OrderService
func NewOrderService(states *state.Controller, opts ...Option) *OrderService {
	s := &OrderService{
		states:  states,
		idemTTL: shared.DefaultIdempotencyTTL,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = rand.New(rand.NewSource(s.now().UnixNano()))
	}
	return s
}

// CreateOrder places an order, consumes its bill of materials and prepends it
// to the order list. A missing process or missing items are reported in the
// response, never as an error.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	params, err := parseOrderParams(req)
	if err != nil {
		return nil, err
	}
	order, err := manufacturing.NewProductionOrder(params, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.claim(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	var report manufacturing.DeductionReport
	_, err = s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		var items []inventory.InventoryItem
		items, report = manufacturing.ApplyOrder(order, current.Inventory, current.Processes)

		next := current
		next.Inventory = items
		next.Orders = state.Prepend(current.Orders, order)

		events := []shared.DomainEvent{manufacturing.NewOrderCreatedEvent(order, report)}
		events = append(events, deductionEvents(current.Inventory, items, report, order.ID)...)
		return next, events, nil
	})
	if err != nil {
		s.release(ctx, req.IdempotencyKey)
		return nil, err
	}

	log := logger.Enrich(ctx, s.logger)
	if report.HasGaps() {
		log.Warn("Order created with incomplete bill of materials",
			zap.String("order_id", order.ID),
			zap.String("product_name", order.ProductName),
			zap.Bool("process_matched", report.ProcessMatched),
			zap.Int("skipped_items", len(report.Skipped)),
		)
	} else {
		log.Info("Order created",
			zap.String("order_id", order.ID),
			zap.String("order_number", order.OrderNumber),
			zap.Int("deductions", len(report.Deductions)),
		)
	}

	return &CreateOrderResponse{
		Order:     ToOrderResponse(order),
		Deduction: ToDeductionReportResponse(report),
	}, nil
}

// ListOrders returns the orders matching filter, newest first
func (s *OrderService) ListOrders(_ context.Context, filter OrderListFilter) []OrderResponse {
	orders := s.states.Snapshot().Orders
	matched := make([]manufacturing.ProductionOrder, 0, len(orders))
	for _, o := range orders {
		if o.Matches(filter.Search, filter.Status) {
			matched = append(matched, o)
		}
	}
	return ToOrderResponses(matched)
}

// GetOrder returns one order by id
func (s *OrderService) GetOrder(_ context.Context, id string) (*OrderResponse, error) {
	orders := s.states.Snapshot().Orders
	idx := manufacturing.IndexOfOrder(orders, id)
	if idx < 0 {
		return nil, shared.NewNotFoundError("order", id)
	}
	resp := ToOrderResponse(orders[idx])
	return &resp, nil
}

// TickProgress advances every in-progress order by one random increment,
// committed as a single update
func (s *OrderService) TickProgress(ctx context.Context) (*TickResponse, error) {
	var result manufacturing.TickResult
	next, err := s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		s.srcMu.Lock()
		result = manufacturing.Tick(current.Orders, s.src)
		s.srcMu.Unlock()

		next := current
		next.Orders = result.Orders
		events := make([]shared.DomainEvent, 0, len(result.Completed))
		for _, o := range result.Completed {
			events = append(events, manufacturing.NewOrderCompletedEvent(o))
		}
		return next, events, nil
	})
	if err != nil {
		return nil, err
	}

	if s.observer != nil {
		s.observer.ObserveTick(result.Advanced)
		s.observer.SetInventoryGauges(len(inventory.LowStock(next.Inventory)), countInProgress(next.Orders))
	}
	if len(result.Completed) > 0 {
		logger.Enrich(ctx, s.logger).Info("Orders completed",
			zap.Int("count", len(result.Completed)),
		)
	}

	return &TickResponse{
		Advanced:  result.Advanced,
		Completed: ToOrderResponses(result.Completed),
	}, nil
}

// ProgressJob adapts TickProgress to the scheduler's job signature
func (s *OrderService) ProgressJob() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.TickProgress(ctx)
		return err
	}
}

func (s *OrderService) claim(ctx context.Context, key string) error {
	if s.idempotency == nil || key == "" {
		return nil
	}
	fresh, err := s.idempotency.MarkProcessed(ctx, idempotencyKey(key), s.idemTTL)
	if err != nil {
		// A broken store must not block order entry
		logger.Enrich(ctx, s.logger).Warn("Idempotency check failed", zap.Error(err))
		return nil
	}
	if !fresh {
		return shared.ErrDuplicateRequest
	}
	return nil
}

func (s *OrderService) release(ctx context.Context, key string) {
	if s.idempotency == nil || key == "" {
		return
	}
	if err := s.idempotency.Release(ctx, idempotencyKey(key)); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to release idempotency key", zap.Error(err))
	}
}

func idempotencyKey(key string) string {
	return "orders:create:" + key
}

func parseOrderParams(req CreateOrderRequest) (manufacturing.NewOrderParams, error) {
	start, err := time.Parse(manufacturing.DateLayout, req.StartDate)
	if err != nil {
		return manufacturing.NewOrderParams{}, shared.NewInvalidInputError("start date must be YYYY-MM-DD")
	}
	end, err := time.Parse(manufacturing.DateLayout, req.EndDate)
	if err != nil {
		return manufacturing.NewOrderParams{}, shared.NewInvalidInputError("end date must be YYYY-MM-DD")
	}
	return manufacturing.NewOrderParams{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		StartDate:   start,
		EndDate:     end,
		Priority:    manufacturing.Priority(req.Priority),
		Status:      manufacturing.OrderStatus(req.Status),
	}, nil
}

// deductionEvents emits one StockDeducted per touched item plus any stock alerts,
// comparing each item's quantity before the order with its final quantity.
func deductionEvents(before, after []inventory.InventoryItem, report manufacturing.DeductionReport, orderID string) []shared.DomainEvent {
	events := make([]shared.DomainEvent, 0, len(report.Deductions))
	seen := make(map[string]bool, len(report.Deductions))
	for _, d := range report.Deductions {
		if seen[d.ItemID] {
			continue
		}
		seen[d.ItemID] = true
		idxBefore := inventory.IndexOf(before, d.ItemID)
		idxAfter := inventory.IndexOf(after, d.ItemID)
		if idxBefore < 0 || idxAfter < 0 {
			continue
		}
		events = append(events, inventory.NewStockDeductedEvent(before[idxBefore], after[idxAfter], orderID))
		events = append(events, inventory.TransitionEvents(before[idxBefore], after[idxAfter])...)
	}
	return events
}

func countInProgress(orders []manufacturing.ProductionOrder) int {
	n := 0
	for _, o := range orders {
		if o.Status == manufacturing.OrderStatusInProgress {
			n++
		}
	}
	return n
}
