package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/protrack/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Store persists snapshots. Load returns (nil, nil) when nothing was saved yet.
type Store interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, s State) error
}

// Mutation computes the next snapshot from the current one.
// Returning an error aborts the update and nothing is committed.
type Mutation func(current State) (State, []shared.DomainEvent, error)

// Controller is the single owner of the application state.
// Updates are serialized; readers get consistent snapshots without blocking
// on persistence or event delivery.
type Controller struct {
	mu        sync.RWMutex
	current   State
	store     Store
	saveMu    sync.Mutex
	saved     uint64
	publisher shared.EventPublisher
	logger    *zap.Logger
	onSaveErr func(error)
}

// Option configures a Controller
type Option func(*Controller)

// WithStore enables write-through persistence of every committed snapshot
func WithStore(store Store) Option {
	return func(c *Controller) {
		c.store = store
	}
}

// WithEventPublisher publishes domain events after each commit
func WithEventPublisher(publisher shared.EventPublisher) Option {
	return func(c *Controller) {
		c.publisher = publisher
	}
}

// WithSaveFailureHook registers fn to be called whenever a snapshot fails to persist
func WithSaveFailureHook(fn func(error)) Option {
	return func(c *Controller) {
		c.onSaveErr = fn
	}
}

// WithLogger sets the controller logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller holding initial
func NewController(initial State, opts ...Option) *Controller {
	c := &Controller{
		current: initial,
		saved:   initial.Version,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current state
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Update applies fn to the current snapshot and commits the result.
//
// The commit is visible to readers as soon as it is made. The snapshot is
// then written to the store outside the state lock; a store failure is
// logged and does not undo the commit. Events are published last.
func (c *Controller) Update(ctx context.Context, fn Mutation) (State, error) {
	c.mu.Lock()
	next, events, err := fn(c.current)
	if err != nil {
		c.mu.Unlock()
		return State{}, err
	}
	next.Version = c.current.Version + 1
	c.current = next
	c.mu.Unlock()

	c.persist(ctx, next)
	c.publish(ctx, events)
	return next, nil
}

// persist saves snap unless a newer snapshot has already been written.
// Saves are serialized so the store never moves backwards.
func (c *Controller) persist(ctx context.Context, snap State) {
	if c.store == nil {
		return
	}
	c.saveMu.Lock()
	defer c.saveMu.Unlock()
	if snap.Version <= c.saved {
		return
	}
	if err := c.store.Save(ctx, snap); err != nil {
		c.logger.Warn("Failed to persist state snapshot",
			zap.Uint64("version", snap.Version),
			zap.Error(err),
		)
		if c.onSaveErr != nil {
			c.onSaveErr(err)
		}
		return
	}
	c.saved = snap.Version
}

func (c *Controller) publish(ctx context.Context, events []shared.DomainEvent) {
	if c.publisher == nil || len(events) == 0 {
		return
	}
	// Event delivery failures never roll back a committed snapshot
	if err := c.publisher.Publish(ctx, events...); err != nil {
		c.logger.Warn("Failed to publish domain events",
			zap.Int("count", len(events)),
			zap.Error(err),
		)
	}
}

// Bootstrap loads the persisted snapshot from store. When the store is empty,
// seed is saved and returned instead.
func Bootstrap(ctx context.Context, store Store, seed func() State) (State, error) {
	loaded, err := store.Load(ctx)
	if err != nil {
		return State{}, fmt.Errorf("failed to load state: %w", err)
	}
	if loaded != nil && !loaded.IsEmpty() {
		return *loaded, nil
	}

	initial := seed()
	if err := store.Save(ctx, initial); err != nil {
		return State{}, fmt.Errorf("failed to save seed state: %w", err)
	}
	return initial, nil
}
