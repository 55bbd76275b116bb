// Package resource manages machines, crews and stations on the shop floor.
package resource

import (
	"context"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/resource"
	"github.com/protrack/backend/internal/domain/shared"
)

// ResourceService handles resource operations
type ResourceService struct {
	states *state.Controller
}

// NewResourceService creates a new ResourceService
func NewResourceService(states *state.Controller) *ResourceService {
	return &ResourceService{states: states}
}

// List returns every resource
func (s *ResourceService) List(_ context.Context) []ResourceResponse {
	resources := s.states.Snapshot().Resources
	out := make([]ResourceResponse, len(resources))
	for i, r := range resources {
		out[i] = ToResourceResponse(r)
	}
	return out
}

// UpdateStatus switches a resource online, offline or into maintenance
func (s *ResourceService) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*ResourceResponse, error) {
	status, err := resource.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var updated resource.Resource
	_, err = s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		idx := resource.IndexOf(current.Resources, id)
		if idx < 0 {
			return current, nil, shared.NewNotFoundError("resource", id)
		}
		updated = current.Resources[idx].WithStatus(status)
		next := current
		next.Resources = state.ReplaceAt(current.Resources, idx, updated)
		return next, nil, nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToResourceResponse(updated)
	return &resp, nil
}
