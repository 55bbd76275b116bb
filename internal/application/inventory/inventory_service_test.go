package inventory

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/shared"
	"github.com/protrack/backend/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// sequenceSource returns its values in turn
type sequenceSource struct {
	values []float64
	next   int
}

func (s *sequenceSource) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func createTestItem(t *testing.T, id, sku string, qty, reorder int64) inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem(id, "Item "+id, sku, inventory.GroupRawMaterial,
		decimal.NewFromInt(qty), "kg", decimal.NewFromInt(reorder))
	require.NoError(t, err)
	return item
}

func newTestService(t *testing.T, opts ...Option) (*InventoryService, *state.Controller, *MockEventPublisher) {
	t.Helper()
	publisher := &MockEventPublisher{}
	initial := state.State{Inventory: []inventory.InventoryItem{
		createTestItem(t, "i1", "E-001", 15000, 1000),
		createTestItem(t, "i2", "M-552", 40, 50),
		createTestItem(t, "i3", "PK-100", 300, 100),
	}}
	ctrl := state.NewController(initial, state.WithEventPublisher(publisher))
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewInventoryService(ctrl, opts...), ctrl, publisher
}

func ptr[T any](v T) *T { return &v }

func TestInventoryService_ListAndLowStock(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	items := svc.List(ctx)
	require.Len(t, items, 3)
	assert.Equal(t, "IN STOCK", items[0].DisplayStatus)
	assert.Equal(t, "LOW STOCK", items[1].DisplayStatus)
	assert.True(t, items[1].IsLowStock)

	low := svc.LowStock(ctx)
	require.Len(t, low, 1)
	assert.Equal(t, "i2", low[0].ID)
}

func TestInventoryService_Get(t *testing.T) {
	svc, _, _ := newTestService(t)

	item, err := svc.Get(context.Background(), "i3")
	require.NoError(t, err)
	assert.Equal(t, "PK-100", item.SKU)

	_, err = svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInventoryService_Create(t *testing.T) {
	svc, ctrl, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateItemRequest{
		Name: "Solder Paste", SKU: "SP-01", Group: "Raw Material",
		Quantity: decimal.Zero, Unit: "g", ReorderLevel: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, string(inventory.StatusOutOfStock), item.Status)
	assert.Len(t, ctrl.Snapshot().Inventory, 4)

	_, err = svc.Create(ctx, CreateItemRequest{Name: "Dup", SKU: "e-001", Group: "Raw Material"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = svc.Create(ctx, CreateItemRequest{Name: "Bad", SKU: "X-1", Group: "Finished Goods"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestInventoryService_Update_RecomputesStatus(t *testing.T) {
	svc, ctrl, publisher := newTestService(t)

	item, err := svc.Update(context.Background(), "i1", UpdateItemRequest{Quantity: ptr(decimal.Zero)})
	require.NoError(t, err)

	assert.Equal(t, string(inventory.StatusOutOfStock), item.Status)
	assert.Equal(t, "OUT OF STOCK", item.DisplayStatus)
	assert.Equal(t, "Item i1", item.Name, "untouched fields are kept")
	assert.Equal(t, inventory.StatusOutOfStock, ctrl.Snapshot().Inventory[0].Status)
	assert.Len(t, publisher.GetEventsByType(inventory.EventTypeStockAdjusted), 1)
	assert.Len(t, publisher.GetEventsByType(inventory.EventTypeOutOfStock), 1)
	assert.Len(t, publisher.GetEventsByType(inventory.EventTypeLowStock), 1)
}

func TestInventoryService_Update_Errors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, "missing", UpdateItemRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.Update(ctx, "i1", UpdateItemRequest{SKU: ptr("M-552")})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = svc.Update(ctx, "i1", UpdateItemRequest{ReorderLevel: ptr(decimal.NewFromInt(-1))})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	// renaming onto its own SKU is fine
	_, err = svc.Update(ctx, "i1", UpdateItemRequest{SKU: ptr("e-001")})
	assert.NoError(t, err)
}

func TestInventoryService_RejectsNegativeQuantity(t *testing.T) {
	svc, ctrl, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateItemRequest{
		Name: "Flux", SKU: "FX-1", Group: "Raw Material",
		Quantity: decimal.NewFromInt(-50), Unit: "g",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Update(ctx, "i1", UpdateItemRequest{Quantity: ptr(decimal.NewFromInt(-7))})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	snap := ctrl.Snapshot()
	assert.Len(t, snap.Inventory, 3)
	assert.True(t, decimal.NewFromInt(15000).Equal(snap.Inventory[0].Quantity))
	assert.Zero(t, snap.Version)
}

func TestInventoryService_Update_KeepsDeductedNegativeQuantity(t *testing.T) {
	publisher := &MockEventPublisher{}
	item := createTestItem(t, "i1", "E-001", 0, 10).WithQuantity(decimal.NewFromInt(-20))
	ctrl := state.NewController(state.State{Inventory: []inventory.InventoryItem{item}}, state.WithEventPublisher(publisher))
	svc := NewInventoryService(ctrl)

	updated, err := svc.Update(context.Background(), "i1", UpdateItemRequest{Name: ptr("Copper Wire")})

	require.NoError(t, err)
	assert.Equal(t, "Copper Wire", updated.Name)
	assert.True(t, decimal.NewFromInt(-20).Equal(ctrl.Snapshot().Inventory[0].Quantity))
}

func TestInventoryService_Delete(t *testing.T) {
	svc, ctrl, _ := newTestService(t)

	require.NoError(t, svc.Delete(context.Background(), "i2"))
	assert.Len(t, ctrl.Snapshot().Inventory, 2)
	assert.ErrorIs(t, svc.Delete(context.Background(), "i2"), shared.ErrNotFound)
}

func TestInventoryService_Sync(t *testing.T) {
	archive := storage.NewMemoryArchive()
	svc, ctrl, publisher := newTestService(t, WithArchive(archive, "imports/"))

	csv := "SKU,Quantity\nE-001,900\nUNKNOWN,5\nM-552,abc\n,7\npk-100,300\n"
	resp, err := svc.Sync(context.Background(), "stock.csv", strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Updated)
	require.Len(t, resp.Skipped, 3)
	assert.Equal(t, SkippedRowResponse{Line: 3, Code: SkipCodeItemNotFound, Reason: "no inventory item matches", Value: "UNKNOWN"}, resp.Skipped[0])
	assert.Equal(t, SkipCodeInvalidQuantity, resp.Skipped[1].Code)
	assert.Equal(t, 4, resp.Skipped[1].Line)
	assert.Equal(t, SkipCodeMissingKey, resp.Skipped[2].Code)

	snap := ctrl.Snapshot()
	assert.True(t, decimal.NewFromInt(900).Equal(snap.Inventory[0].Quantity))
	assert.True(t, decimal.NewFromInt(40).Equal(snap.Inventory[1].Quantity))
	// unchanged quantity raises no adjustment
	assert.Len(t, publisher.GetEventsByType(inventory.EventTypeStockAdjusted), 1)
	assert.Len(t, publisher.GetEventsByType(inventory.EventTypeLowStock), 1)

	require.NotEmpty(t, resp.ArchiveKey)
	assert.True(t, strings.HasPrefix(resp.ArchiveKey, "imports/inventory-sync/2024/03/01/"))
	stored, ok := archive.Get(resp.ArchiveKey)
	require.True(t, ok)
	assert.Equal(t, csv, string(stored))
}

func TestInventoryService_Sync_SkipsNegativeQuantity(t *testing.T) {
	svc, ctrl, _ := newTestService(t)

	resp, err := svc.Sync(context.Background(), "stock.csv", strings.NewReader("sku,quantity\nE-001,-300\nM-552,60\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Updated)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, SkippedRowResponse{Line: 2, Code: SkipCodeInvalidQuantity, Reason: "quantity cannot be negative", Value: "-300"}, resp.Skipped[0])
	snap := ctrl.Snapshot()
	assert.True(t, decimal.NewFromInt(15000).Equal(snap.Inventory[0].Quantity))
	assert.True(t, decimal.NewFromInt(60).Equal(snap.Inventory[1].Quantity))
}

func TestInventoryService_Sync_ByID(t *testing.T) {
	svc, ctrl, _ := newTestService(t)

	resp, err := svc.Sync(context.Background(), "stock.csv", strings.NewReader("id,quantity\ni2,75.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Updated)
	assert.Empty(t, resp.ArchiveKey)
	assert.True(t, decimal.RequireFromString("75.5").Equal(ctrl.Snapshot().Inventory[1].Quantity))
}

func TestInventoryService_Sync_Rejects(t *testing.T) {
	svc, ctrl, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Sync(ctx, "stock.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Sync(ctx, "stock.csv", strings.NewReader("sku,count\nE-001,1\n"))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Sync(ctx, "stock.csv", strings.NewReader("name,quantity\nFoo,1\n"))
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	assert.Equal(t, uint64(0), ctrl.Snapshot().Version)
}

func TestInventoryService_SimulateSync(t *testing.T) {
	svc, ctrl, publisher := newTestService(t)

	// 15000 + 0.5*500 - 100 = 15150; 40 + 0*500 - 100 clamps to 0; 300 + 0.2*500 - 100 = 300
	resp, err := svc.SimulateSync(context.Background(), &sequenceSource{values: []float64{0.5, 0, 0.2}})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Updated)
	assert.Equal(t, SourceSimulatedSync, resp.Source)

	snap := ctrl.Snapshot()
	assert.True(t, decimal.NewFromInt(15150).Equal(snap.Inventory[0].Quantity))
	assert.True(t, decimal.Zero.Equal(snap.Inventory[1].Quantity))
	assert.Equal(t, inventory.StatusOutOfStock, snap.Inventory[1].Status)
	assert.True(t, decimal.NewFromInt(300).Equal(snap.Inventory[2].Quantity))
	assert.Len(t, publisher.GetEventsByType(inventory.EventTypeStockAdjusted), 2)
	assert.Len(t, publisher.GetEventsByType(inventory.EventTypeOutOfStock), 1)
}
