// Package logistics records outbound shipment costs.
package logistics

import (
	"context"
	"time"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/logistics"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/shared"
)

// TransportService handles transport cost operations
type TransportService struct {
	states *state.Controller
}

// NewTransportService creates a new TransportService
func NewTransportService(states *state.Controller) *TransportService {
	return &TransportService{states: states}
}

// List returns every entry, newest first
func (s *TransportService) List(_ context.Context) []TransportResponse {
	entries := s.states.Snapshot().Transports
	out := make([]TransportResponse, len(entries))
	for i, e := range entries {
		out[i] = ToTransportResponse(e)
	}
	return out
}

// Add records a shipment against an existing order and prepends it
func (s *TransportService) Add(ctx context.Context, req AddTransportRequest) (*TransportResponse, error) {
	date, err := time.Parse(manufacturing.DateLayout, req.Date)
	if err != nil {
		return nil, shared.NewInvalidInputError("date must be YYYY-MM-DD")
	}
	entry, err := logistics.NewTransportEntry(shared.NewID(), req.OrderID, req.TransporterName,
		req.TransportCost, req.LoadingCost, req.UnloadingCost, req.LabourCharge, date)
	if err != nil {
		return nil, err
	}

	_, err = s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		if manufacturing.IndexOfOrder(current.Orders, entry.OrderID) < 0 {
			return current, nil, shared.NewValidationError("order %q does not exist", entry.OrderID)
		}
		next := current
		next.Transports = state.Prepend(current.Transports, entry)
		return next, nil, nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToTransportResponse(entry)
	return &resp, nil
}

// Summary totals every recorded shipment
func (s *TransportService) Summary(_ context.Context) SummaryResponse {
	return ToSummaryResponse(logistics.Summarize(s.states.Snapshot().Transports))
}
