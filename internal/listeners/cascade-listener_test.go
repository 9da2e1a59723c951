package listeners

import (
	"context"
	"testing"

	"gearguard/internal/events"
	"gearguard/pkg/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCascadeUpdatesEquipmentStatus(t *testing.T) {
	testCases := []struct {
		requestStatus string
		wantStatus    string
	}{
		{constants.RequestStatusInProgress, constants.EquipmentStatusUnderMaintenance},
		{constants.RequestStatusRepaired, constants.EquipmentStatusActive},
		{constants.RequestStatusScrap, constants.EquipmentStatusScrapped},
	}

	for _, tc := range testCases {
		t.Run(tc.requestStatus, func(t *testing.T) {
			equipmentRepo := newFakeEquipmentRepo()
			listener := NewCascadeListener(equipmentRepo, zap.NewNop())

			err := listener.HandleRequestSaved(context.Background(), events.RequestSavedEvent{
				RequestID:   1,
				EquipmentID: 10,
				OldStatus:   constants.RequestStatusNew,
				NewStatus:   tc.requestStatus,
			})
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, equipmentRepo.statuses[10])
		})
	}
}

func TestCascadeForceSetsOnEverySave(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	equipmentRepo.statuses[10] = constants.EquipmentStatusScrapped
	listener := NewCascadeListener(equipmentRepo, zap.NewNop())

	// A save that did not change the request status still re-derives the
	// equipment status, undoing any direct write that drifted from it.
	err := listener.HandleRequestSaved(context.Background(), events.RequestSavedEvent{
		RequestID:   1,
		EquipmentID: 10,
		OldStatus:   constants.RequestStatusInProgress,
		NewStatus:   constants.RequestStatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusUnderMaintenance, equipmentRepo.statuses[10])
}

func TestCascadeIgnoresNewRequests(t *testing.T) {
	equipmentRepo := newFakeEquipmentRepo()
	listener := NewCascadeListener(equipmentRepo, zap.NewNop())

	// New requests leave the equipment alone until work starts.
	err := listener.HandleRequestSaved(context.Background(), events.RequestSavedEvent{
		RequestID:   2,
		EquipmentID: 10,
		OldStatus:   "",
		NewStatus:   constants.RequestStatusNew,
	})
	require.NoError(t, err)
	assert.Empty(t, equipmentRepo.statuses)
}
