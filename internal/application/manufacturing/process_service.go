// Package manufacturing maintains the process catalog: the bill of materials
// consumed by each finished product.
package manufacturing

import (
	"context"
	"strings"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/shared"
)

// ProcessService handles process catalog operations
type ProcessService struct {
	states *state.Controller
}

// NewProcessService creates a new ProcessService
func NewProcessService(states *state.Controller) *ProcessService {
	return &ProcessService{states: states}
}

// List returns every process in catalog order
func (s *ProcessService) List(_ context.Context) []ProcessResponse {
	processes := s.states.Snapshot().Processes
	out := make([]ProcessResponse, len(processes))
	for i, p := range processes {
		out[i] = ToProcessResponse(p)
	}
	return out
}

// Create adds a process. Every requirement must name an existing inventory item.
func (s *ProcessService) Create(ctx context.Context, req CreateProcessRequest) (*ProcessResponse, error) {
	process, err := manufacturing.NewProductionProcess(shared.NewID(), req.ProductName,
		toRequirements(req.RawMaterials), toRequirements(req.PackingMaterials))
	if err != nil {
		return nil, err
	}

	_, err = s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		missing := make([]string, 0)
		for _, id := range process.ItemIDs() {
			if inventory.IndexOf(current.Inventory, id) < 0 {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return current, nil, shared.NewValidationError("unknown inventory items: %s", strings.Join(missing, ", "))
		}
		next := current
		next.Processes = state.Append(current.Processes, process)
		return next, nil, nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToProcessResponse(process)
	return &resp, nil
}

// Delete removes a process. Later orders for its product deduct nothing.
func (s *ProcessService) Delete(ctx context.Context, id string) error {
	_, err := s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		idx := manufacturing.IndexOfProcess(current.Processes, id)
		if idx < 0 {
			return current, nil, shared.NewNotFoundError("process", id)
		}
		next := current
		next.Processes = state.RemoveAt(current.Processes, idx)
		return next, nil, nil
	})
	return err
}
