// Package quality tracks laboratory samples of incoming materials and
// regulator samples of finished products.
package quality

import (
	"context"
	"time"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/quality"
	"github.com/protrack/backend/internal/domain/shared"
)

// SampleService handles quality sample operations
type SampleService struct {
	states *state.Controller
	now    func() time.Time
}

// NewSampleService creates a new SampleService
func NewSampleService(states *state.Controller, now func() time.Time) *SampleService {
	if now == nil {
		now = time.Now
	}
	return &SampleService{states: states, now: now}
}

// ListRaw returns raw material samples, newest first
func (s *SampleService) ListRaw(_ context.Context) []RawSampleResponse {
	samples := s.states.Snapshot().RawSamples
	out := make([]RawSampleResponse, len(samples))
	for i, sample := range samples {
		out[i] = ToRawSampleResponse(sample)
	}
	return out
}

// ListGov returns regulator samples, newest first
func (s *SampleService) ListGov(_ context.Context) []GovSampleResponse {
	samples := s.states.Snapshot().GovSamples
	out := make([]GovSampleResponse, len(samples))
	for i, sample := range samples {
		out[i] = ToGovSampleResponse(sample)
	}
	return out
}

// AddRaw registers a pending raw material sample. The received date defaults to today.
func (s *SampleService) AddRaw(ctx context.Context, req AddRawSampleRequest) (*RawSampleResponse, error) {
	received, err := s.dateOrToday(req.ReceivedDate)
	if err != nil {
		return nil, err
	}
	sample, err := quality.NewRawMaterialSample(shared.NewID(), req.MaterialName, req.BatchNumber,
		req.Supplier, req.LabTechnician, req.Remarks, received)
	if err != nil {
		return nil, err
	}

	_, err = s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		next := current
		next.RawSamples = state.Prepend(current.RawSamples, sample)
		return next, nil, nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToRawSampleResponse(sample)
	return &resp, nil
}

// AddGov registers a pending regulator sample. The collection date defaults to today.
func (s *SampleService) AddGov(ctx context.Context, req AddGovSampleRequest) (*GovSampleResponse, error) {
	collected, err := s.dateOrToday(req.CollectionDate)
	if err != nil {
		return nil, err
	}
	sample, err := quality.NewGovProductSample(shared.NewID(), req.ProductName, req.OrderNumber,
		req.OfficialName, req.Department, req.Remarks, collected)
	if err != nil {
		return nil, err
	}

	_, err = s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		next := current
		next.GovSamples = state.Prepend(current.GovSamples, sample)
		return next, nil, nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToGovSampleResponse(sample)
	return &resp, nil
}

// UpdateRawStatus records a verdict; Pass or Fail stamps the test date
func (s *SampleService) UpdateRawStatus(ctx context.Context, id string, req UpdateStatusRequest) (*RawSampleResponse, error) {
	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	var updated quality.RawMaterialSample
	_, err = s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		idx := indexOf(current.RawSamples, func(x quality.RawMaterialSample) bool { return x.ID == id })
		if idx < 0 {
			return current, nil, shared.NewNotFoundError("raw material sample", id)
		}
		updated = current.RawSamples[idx].WithStatus(status, s.now())
		next := current
		next.RawSamples = state.ReplaceAt(current.RawSamples, idx, updated)
		return next, nil, nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToRawSampleResponse(updated)
	return &resp, nil
}

// UpdateGovStatus records a verdict; Pass or Fail stamps the result date
func (s *SampleService) UpdateGovStatus(ctx context.Context, id string, req UpdateStatusRequest) (*GovSampleResponse, error) {
	status, err := parseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	var updated quality.GovProductSample
	_, err = s.states.Update(ctx, func(current state.State) (state.State, []shared.DomainEvent, error) {
		idx := indexOf(current.GovSamples, func(x quality.GovProductSample) bool { return x.ID == id })
		if idx < 0 {
			return current, nil, shared.NewNotFoundError("government sample", id)
		}
		updated = current.GovSamples[idx].WithStatus(status, s.now())
		next := current
		next.GovSamples = state.ReplaceAt(current.GovSamples, idx, updated)
		return next, nil, nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToGovSampleResponse(updated)
	return &resp, nil
}

// Summary counts all samples and those still pending
func (s *SampleService) Summary(_ context.Context) SummaryResponse {
	snap := s.states.Snapshot()
	summary := quality.Summarize(snap.RawSamples, snap.GovSamples)
	return SummaryResponse{Total: summary.Total, Pending: summary.Pending}
}

func (s *SampleService) dateOrToday(value string) (time.Time, error) {
	if value == "" {
		y, m, d := s.now().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, shared.NewInvalidInputError("date must be YYYY-MM-DD")
	}
	return t, nil
}

func parseStatus(value string) (quality.Status, error) {
	status := quality.Status(value)
	if !status.IsValid() {
		return "", shared.NewInvalidInputError("unknown sample status %q", value)
	}
	return status, nil
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i := range items {
		if match(items[i]) {
			return i
		}
	}
	return -1
}
