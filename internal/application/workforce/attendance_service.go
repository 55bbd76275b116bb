// Package workforce manages warehouses and their shift attendance registers.
package workforce

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/shared"
	"github.com/protrack/backend/internal/domain/workforce"
	sheetimport "github.com/protrack/backend/internal/infrastructure/import"
	"github.com/protrack/backend/internal/infrastructure/logger"
	"github.com/protrack/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

const (
	dateLayout      = "2006-01-02"
	maxImportErrors = 200
)

// AttendanceService handles warehouse and attendance operations
type AttendanceService struct {
	states  *state.Controller
	archive storage.Archive
	prefix  string
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures an AttendanceService
type Option func(*AttendanceService)

// WithArchive stores every imported attendance sheet under prefix
func WithArchive(archive storage.Archive, prefix string) Option {
	return func(s *AttendanceService) {
		s.archive = archive
		s.prefix = prefix
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *AttendanceService) {
		s.logger = l
	}
}

// WithClock overrides the clock used for archive keys
func WithClock(now func() time.Time) Option {
	return func(s *AttendanceService) {
		s.now = now
	}
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(states *state.Controller, opts ...Option) *AttendanceService {
	s := &AttendanceService{states: states, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListWarehouses returns every warehouse
func (s *AttendanceService) ListWarehouses(_ context.Context) []WarehouseResponse {
	warehouses := s.states.Snapshot().Warehouses
	out := make([]WarehouseResponse, len(warehouses))
	for i, w := range warehouses {
		out[i] = ToWarehouseResponse(w)
	}
	return out
}

// CreateWarehouse registers a warehouse with no workers
func (s *AttendanceService) CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := workforce.NewWarehouse(shared.NewID(), req.Name, req.Location)
	if err != nil {
		return nil, err
	}
	_, err = s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		next := current
		next.Warehouses = state.Append(current.Warehouses, warehouse)
		return next, nil, nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(warehouse)
	return &resp, nil
}

// ListAttendance returns a warehouse's register, newest first
func (s *AttendanceService) ListAttendance(_ context.Context, warehouseID string) ([]AttendanceResponse, error) {
	snap := s.states.Snapshot()
	if workforce.IndexOfWarehouse(snap.Warehouses, warehouseID) < 0 {
		return nil, shared.NewNotFoundError("warehouse", warehouseID)
	}
	return ToAttendanceResponses(workforce.ForWarehouse(snap.Attendance, warehouseID)), nil
}

// AddAttendance validates every entry and prepends them all, or none
func (s *AttendanceService) AddAttendance(ctx context.Context, warehouseID string, req AddAttendanceRequest) ([]AttendanceResponse, error) {
	records := make([]workforce.AttendanceRecord, 0, len(req.Records))
	for i, entry := range req.Records {
		record, err := newRecord(warehouseID, entry.WorkerName, entry.Status, entry.Shift, entry.Date)
		if err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				return nil, domainErr.WithPrefix("record %d", i+1)
			}
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		records = append(records, record)
	}
	if err := s.prepend(ctx, warehouseID, records); err != nil {
		return nil, err
	}
	return ToAttendanceResponses(records), nil
}

// ImportAttendance reads a worker,status,shift,date sheet. Valid rows are
// added; invalid rows are reported.
func (s *AttendanceService) ImportAttendance(ctx context.Context, warehouseID, filename string, content io.Reader) (*ImportAttendanceResponse, error) {
	if workforce.IndexOfWarehouse(s.states.Snapshot().Warehouses, warehouseID) < 0 {
		return nil, shared.NewNotFoundError("warehouse", warehouseID)
	}
	format, err := sheetimport.DetectFormat(filename)
	if err != nil {
		return nil, shared.NewInvalidInputError("%s", err.Error())
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read attendance file: %w", err)
	}
	rows, err := sheetimport.ReadRows(bytes.NewReader(data), format, "worker", "status", "shift", "date")
	if err != nil {
		return nil, shared.NewInvalidInputError("%s", err.Error())
	}

	errs := sheetimport.NewErrorCollection(maxImportErrors)
	records := make([]workforce.AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		if record, ok := parseRow(warehouseID, row, errs); ok {
			records = append(records, record)
		}
	}
	if err := s.prepend(ctx, warehouseID, records); err != nil {
		return nil, err
	}

	resp := &ImportAttendanceResponse{
		Imported:    len(records),
		Errors:      toImportErrors(errs.Errors()),
		TotalErrors: errs.TotalCount(),
		IsTruncated: errs.IsTruncated(),
	}
	resp.ArchiveKey = s.archiveUpload(ctx, filename, format, data)

	logger.Enrich(ctx, s.logger).Info("Attendance imported",
		zap.String("warehouse_id", warehouseID),
		zap.Int("imported", resp.Imported),
		zap.Int("rejected", resp.TotalErrors),
	)
	return resp, nil
}

func (s *AttendanceService) prepend(ctx context.Context, warehouseID string, records []workforce.AttendanceRecord) error {
	_, err := s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		if workforce.IndexOfWarehouse(current.Warehouses, warehouseID) < 0 {
			return current, nil, shared.NewNotFoundError("warehouse", warehouseID)
		}
		next := current
		next.Attendance = state.Prepend(current.Attendance, records...)
		return next, nil, nil
	})
	return err
}

func (s *AttendanceService) archiveUpload(ctx context.Context, filename string, format sheetimport.Format, data []byte) string {
	if s.archive == nil {
		return ""
	}
	key := storage.ObjectKey(s.prefix, "attendance", filename, s.now())
	if _, err := s.archive.Put(ctx, key, bytes.NewReader(data), int64(len(data)), format.ContentType()); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to archive attendance file",
			zap.String("key", key),
			zap.Error(err),
		)
		return ""
	}
	return key
}

func newRecord(warehouseID, worker, status, shift, date string) (workforce.AttendanceRecord, error) {
	st, err := workforce.ParseAttendanceStatus(status)
	if err != nil {
		return workforce.AttendanceRecord{}, err
	}
	sh, err := workforce.ParseShift(shift)
	if err != nil {
		return workforce.AttendanceRecord{}, err
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return workforce.AttendanceRecord{}, shared.NewInvalidInputError("date must be YYYY-MM-DD")
	}
	return workforce.NewAttendanceRecord(shared.NewID(), warehouseID, worker, day, st, sh)
}

func parseRow(warehouseID string, row *sheetimport.Row, errs *sheetimport.ErrorCollection) (workforce.AttendanceRecord, bool) {
	worker := row.Get("worker")
	if worker == "" {
		errs.AddRequired(row.LineNumber, "worker")
		return workforce.AttendanceRecord{}, false
	}
	status, err := workforce.ParseAttendanceStatus(row.Get("status"))
	if err != nil {
		errs.AddFormat(row.LineNumber, "status", "Present, Absent, Half Day or Leave", row.Get("status"))
		return workforce.AttendanceRecord{}, false
	}
	shift, err := workforce.ParseShift(row.Get("shift"))
	if err != nil {
		errs.AddFormat(row.LineNumber, "shift", "Morning, Evening or Night", row.Get("shift"))
		return workforce.AttendanceRecord{}, false
	}
	day, err := time.Parse(dateLayout, row.Get("date"))
	if err != nil {
		errs.AddFormat(row.LineNumber, "date", "YYYY-MM-DD", row.Get("date"))
		return workforce.AttendanceRecord{}, false
	}
	record, err := workforce.NewAttendanceRecord(shared.NewID(), warehouseID, worker, day, status, shift)
	if err != nil {
		errs.Add(sheetimport.RowError{Row: row.LineNumber, Code: sheetimport.ErrCodeImportInvalidFormat, Message: err.Error()})
		return workforce.AttendanceRecord{}, false
	}
	return record, true
}

func toImportErrors(errs []sheetimport.RowError) []ImportRowError {
	out := make([]ImportRowError, len(errs))
	for i, e := range errs {
		out[i] = ImportRowError{Line: e.Row, Column: e.Column, Message: e.Message, Value: e.Value}
	}
	return out
}
