package resource

import (
	"context"
	"testing"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/resource"
	"github.com/protrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*ResourceService, *state.Controller) {
	ctrl := state.NewController(state.State{Resources: []resource.Resource{
		{ID: "r1", Name: "CNC Machine 01", Type: resource.TypeMachine, Utilization: 85, Status: resource.StatusOnline},
		{ID: "r2", Name: "Assembly Team B", Type: resource.TypeHuman, Utilization: 92, Status: resource.StatusOnline},
	}})
	return NewResourceService(ctrl), ctrl
}

func TestResourceService_List(t *testing.T) {
	svc, _ := newTestService()

	resources := svc.List(context.Background())
	require.Len(t, resources, 2)
	assert.Equal(t, ResourceResponse{ID: "r1", Name: "CNC Machine 01", Type: "Machine", Utilization: 85, Status: "Online"}, resources[0])
}

func TestResourceService_UpdateStatus(t *testing.T) {
	svc, ctrl := newTestService()
	ctx := context.Background()

	updated, err := svc.UpdateStatus(ctx, "r1", UpdateStatusRequest{Status: "maintenance"})
	require.NoError(t, err)
	assert.Equal(t, "Maintenance", updated.Status)
	assert.Equal(t, resource.StatusMaintenance, ctrl.Snapshot().Resources[0].Status)

	updated, err = svc.UpdateStatus(ctx, "r2", UpdateStatusRequest{Status: "Offline"})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Utilization)

	_, err = svc.UpdateStatus(ctx, "r1", UpdateStatusRequest{Status: "Broken"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.UpdateStatus(ctx, "r9", UpdateStatusRequest{Status: "Online"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
