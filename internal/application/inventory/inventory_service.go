package inventory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/shared"
	sheetimport "github.com/protrack/backend/internal/infrastructure/import"
	"github.com/protrack/backend/internal/infrastructure/logger"
	"github.com/protrack/backend/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Adjustment sources recorded on StockAdjusted events
const (
	SourceManual        = "manual"
	SourceERPSync       = "erp_sync"
	SourceSimulatedSync = "simulated_sync"
)

// Sync row problems
const (
	SkipCodeItemNotFound    = "item_not_found"
	SkipCodeMissingKey      = "missing_key"
	SkipCodeInvalidQuantity = "invalid_quantity"
)

// maxSyncErrors bounds the skipped rows reported back to the caller
const maxSyncErrors = 200

// RandomSource supplies floats in [0, 1). *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// InventoryService handles inventory-related business operations
type InventoryService struct {
	states  *state.Controller
	archive storage.Archive
	prefix  string
	logger  *zap.Logger
	now     func() time.Time

	rngMu sync.Mutex
	rng   RandomSource
}

// Option configures an InventoryService
type Option func(*InventoryService)

// WithArchive stores every uploaded sync file under prefix
func WithArchive(archive storage.Archive, prefix string) Option {
	return func(s *InventoryService) {
		s.archive = archive
		s.prefix = prefix
	}
}

// WithRandomSource sets the source used by SimulateSync when none is passed
func WithRandomSource(rng RandomSource) Option {
	return func(s *InventoryService) {
		s.rng = rng
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *InventoryService) {
		s.logger = l
	}
}

// WithClock overrides the clock used for archive keys
func WithClock(now func() time.Time) Option {
	return func(s *InventoryService) {
		s.now = now
	}
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(states *state.Controller, opts ...Option) *InventoryService {
	s := &InventoryService{
		states: states,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.now().UnixNano()))
	}
	return s
}

// List returns every item in catalog order
func (s *InventoryService) List(_ context.Context) []InventoryItemResponse {
	return ToInventoryItemResponses(s.states.Snapshot().Inventory)
}

// LowStock returns the items at or below their reorder level
func (s *InventoryService) LowStock(_ context.Context) []InventoryItemResponse {
	return ToInventoryItemResponses(inventory.LowStock(s.states.Snapshot().Inventory))
}

// Get returns one item by id
func (s *InventoryService) Get(_ context.Context, id string) (*InventoryItemResponse, error) {
	items := s.states.Snapshot().Inventory
	idx := inventory.IndexOf(items, id)
	if idx < 0 {
		return nil, shared.NewNotFoundError("inventory item", id)
	}
	resp := ToInventoryItemResponse(items[idx])
	return &resp, nil
}

// Create registers a new item. SKUs are unique case-insensitively.
func (s *InventoryService) Create(ctx context.Context, req CreateItemRequest) (*InventoryItemResponse, error) {
	if req.Quantity.IsNegative() {
		return nil, errNegativeQuantity()
	}
	item, err := inventory.NewInventoryItem(shared.NewID(), req.Name, req.SKU, inventory.Group(req.Group),
		req.Quantity, req.Unit, req.ReorderLevel)
	if err != nil {
		return nil, err
	}

	_, err = s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		if inventory.IndexOfSKU(current.Inventory, item.SKU) >= 0 {
			return current, nil, shared.NewDomainError(shared.CodeAlreadyExists,
				fmt.Sprintf("SKU %q is already registered", item.SKU))
		}
		next := current
		next.Inventory = state.Append(current.Inventory, item)
		return next, nil, nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToInventoryItemResponse(item)
	return &resp, nil
}

// Update applies the non-nil fields of req. The status follows the quantity.
// Only deductions drive a quantity below zero, so a negative quantity in req
// is rejected while an already negative item can still be edited.
func (s *InventoryService) Update(ctx context.Context, id string, req UpdateItemRequest) (*InventoryItemResponse, error) {
	if req.Quantity != nil && req.Quantity.IsNegative() {
		return nil, errNegativeQuantity()
	}
	var updated inventory.InventoryItem
	_, err := s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		idx := inventory.IndexOf(current.Inventory, id)
		if idx < 0 {
			return current, nil, shared.NewNotFoundError("inventory item", id)
		}
		before := current.Inventory[idx]

		item, err := applyUpdate(before, req)
		if err != nil {
			return current, nil, err
		}
		if req.SKU != nil {
			if other := inventory.IndexOfSKU(current.Inventory, item.SKU); other >= 0 && other != idx {
				return current, nil, shared.NewDomainError(shared.CodeAlreadyExists,
					fmt.Sprintf("SKU %q is already registered", item.SKU))
			}
		}
		updated = item

		next := current
		next.Inventory = state.ReplaceAt(current.Inventory, idx, item)
		return next, adjustmentEvents(before, item, SourceManual), nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToInventoryItemResponse(updated)
	return &resp, nil
}

// Delete removes an item. Processes that reference it skip it from then on.
func (s *InventoryService) Delete(ctx context.Context, id string) error {
	_, err := s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		idx := inventory.IndexOf(current.Inventory, id)
		if idx < 0 {
			return current, nil, shared.NewNotFoundError("inventory item", id)
		}
		next := current
		next.Inventory = state.RemoveAt(current.Inventory, idx)
		return next, nil, nil
	})
	return err
}

// Sync sets quantities from an ERP stock export. Rows are matched by the
// sku column, or by id when there is no sku column. Rows that cannot be
// applied are reported and do not fail the sync.
func (s *InventoryService) Sync(ctx context.Context, filename string, content io.Reader) (*SyncResponse, error) {
	format, err := sheetimport.DetectFormat(filename)
	if err != nil {
		return nil, shared.NewInvalidInputError("%s", err.Error())
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync file: %w", err)
	}

	rows, err := sheetimport.ReadRows(bytes.NewReader(data), format, "quantity")
	if err != nil {
		return nil, shared.NewInvalidInputError("%s", err.Error())
	}
	keyColumn, err := syncKeyColumn(rows)
	if err != nil {
		return nil, err
	}

	errs := sheetimport.NewErrorCollection(maxSyncErrors)
	var updated int
	_, err = s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		items := current.Inventory
		events := make([]shared.DomainEvent, 0)
		updated = 0
		for _, row := range rows {
			key := strings.TrimSpace(row.Get(keyColumn))
			if key == "" {
				errs.Add(sheetimport.RowError{Row: row.LineNumber, Column: keyColumn,
					Code: SkipCodeMissingKey, Message: keyColumn + " is empty"})
				continue
			}
			raw := strings.TrimSpace(row.Get("quantity"))
			quantity, perr := decimal.NewFromString(raw)
			if perr != nil {
				errs.Add(sheetimport.RowError{Row: row.LineNumber, Column: "quantity",
					Code: SkipCodeInvalidQuantity, Message: "quantity is not a number", Value: raw})
				continue
			}
			if quantity.IsNegative() {
				errs.Add(sheetimport.RowError{Row: row.LineNumber, Column: "quantity",
					Code: SkipCodeInvalidQuantity, Message: "quantity cannot be negative", Value: raw})
				continue
			}

			idx := lookup(items, keyColumn, key)
			if idx < 0 {
				errs.Add(sheetimport.RowError{Row: row.LineNumber, Column: keyColumn,
					Code: SkipCodeItemNotFound, Message: "no inventory item matches", Value: key})
				continue
			}
			before := items[idx]
			after := before.WithQuantity(quantity)
			items = state.ReplaceAt(items, idx, after)
			events = append(events, adjustmentEvents(before, after, SourceERPSync)...)
			updated++
		}
		next := current
		next.Inventory = items
		return next, events, nil
	})
	if err != nil {
		return nil, err
	}

	resp := &SyncResponse{
		Source:      SourceERPSync,
		Updated:     updated,
		Skipped:     toSkippedRows(errs.Errors()),
		TotalErrors: errs.TotalCount(),
		IsTruncated: errs.IsTruncated(),
	}
	resp.ArchiveKey = s.archiveUpload(ctx, filename, format, data)

	logger.Enrich(ctx, s.logger).Info("Inventory synchronised",
		zap.String("file", filename),
		zap.Int("updated", resp.Updated),
		zap.Int("skipped", resp.TotalErrors),
	)
	return resp, nil
}

// SimulateSync perturbs every quantity the way the demo ERP feed does:
// q' = max(0, floor(q + r*500 - 100)) with r drawn from rng.
// A nil rng uses the service's own source.
func (s *InventoryService) SimulateSync(ctx context.Context, rng RandomSource) (*SyncResponse, error) {
	var updated int
	_, err := s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		items := make([]inventory.InventoryItem, len(current.Inventory))
		events := make([]shared.DomainEvent, 0)
		s.rngMu.Lock()
		defer s.rngMu.Unlock()
		if rng == nil {
			rng = s.rng
		}
		for i, before := range current.Inventory {
			delta := decimal.NewFromFloat(rng.Float64()*500 - 100)
			quantity := decimal.Max(decimal.Zero, before.Quantity.Add(delta).Floor())
			items[i] = before.WithQuantity(quantity)
			events = append(events, adjustmentEvents(before, items[i], SourceSimulatedSync)...)
		}
		updated = len(items)
		next := current
		next.Inventory = items
		return next, events, nil
	})
	if err != nil {
		return nil, err
	}
	return &SyncResponse{Source: SourceSimulatedSync, Updated: updated, Skipped: []SkippedRowResponse{}}, nil
}

func (s *InventoryService) archiveUpload(ctx context.Context, filename string, format sheetimport.Format, data []byte) string {
	if s.archive == nil {
		return ""
	}
	key := storage.ObjectKey(s.prefix, "inventory-sync", filename, s.now())
	if _, err := s.archive.Put(ctx, key, bytes.NewReader(data), int64(len(data)), format.ContentType()); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to archive sync file",
			zap.String("key", key),
			zap.Error(err),
		)
		return ""
	}
	return key
}

func errNegativeQuantity() error {
	return shared.NewInvalidInputError("quantity cannot be negative")
}

func applyUpdate(item inventory.InventoryItem, req UpdateItemRequest) (inventory.InventoryItem, error) {
	name, sku, group, unit := item.Name, item.SKU, item.Group, item.Unit
	quantity, reorder := item.Quantity, item.ReorderLevel
	if req.Name != nil {
		name = *req.Name
	}
	if req.SKU != nil {
		sku = *req.SKU
	}
	if req.Group != nil {
		group = inventory.Group(*req.Group)
	}
	if req.Unit != nil {
		unit = *req.Unit
	}
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if req.ReorderLevel != nil {
		reorder = *req.ReorderLevel
	}
	return inventory.NewInventoryItem(item.ID, name, sku, group, quantity, unit, reorder)
}

// adjustmentEvents returns nothing when the quantity did not move
func adjustmentEvents(before, after inventory.InventoryItem, source string) []shared.DomainEvent {
	if before.Quantity.Equal(after.Quantity) {
		return nil
	}
	events := []shared.DomainEvent{inventory.NewStockAdjustedEvent(before, after, source)}
	return append(events, inventory.TransitionEvents(before, after)...)
}

func syncKeyColumn(rows []*sheetimport.Row) (string, error) {
	if len(rows) == 0 {
		return "sku", nil
	}
	for _, col := range []string{"sku", "id"} {
		if _, ok := rows[0].Data[col]; ok {
			return col, nil
		}
	}
	return "", shared.NewInvalidInputError("sync file needs a sku or id column")
}

func lookup(items []inventory.InventoryItem, column, key string) int {
	if column == "id" {
		return inventory.IndexOf(items, key)
	}
	return inventory.IndexOfSKU(items, key)
}

func toSkippedRows(errs []sheetimport.RowError) []SkippedRowResponse {
	rows := make([]SkippedRowResponse, len(errs))
	for i, e := range errs {
		rows[i] = SkippedRowResponse{Line: e.Row, Code: e.Code, Reason: e.Message, Value: e.Value}
	}
	return rows
}
