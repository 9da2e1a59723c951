package services

import (
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRequestServiceFixture(requestRepo *fakeRequestRepo, equipmentRepo *fakeEquipmentRepo, slaRepo *fakeSLARepo) (RequestServiceInterface, *fakePublisher) {
	bus := &fakePublisher{}
	svc := NewRequestService(requestRepo, equipmentRepo, slaRepo, bus, zap.NewNop())
	return svc, bus
}

func TestCreateRequestDefaultsTeamFromEquipment(t *testing.T) {
	requestRepo := newFakeRequestRepo()
	equipmentRepo := newFakeEquipmentRepo(entities.Equipment{ID: 10, Name: "Lathe", TeamID: 5})
	slaRepo := &fakeSLARepo{match: &entities.SLA{
		ID:          3,
		Priority:    constants.PriorityHigh,
		RequestType: constants.SLARequestTypeBoth,
		IsActive:    true,
	}}
	svc, bus := newRequestServiceFixture(requestRepo, equipmentRepo, slaRepo)

	created, err := svc.CreateRequest(testCtx(testManager), dto.CreateMaintenanceRequestDTO{
		Title:       "Spindle vibration",
		RequestType: constants.RequestTypeCorrective,
		Priority:    constants.PriorityHigh,
		EquipmentID: 10,
	})
	require.NoError(t, err)

	stored := requestRepo.requests[created.ID]
	assert.Equal(t, constants.RequestStatusNew, stored.Status)
	require.NotNil(t, stored.TeamID)
	assert.Equal(t, uint64(5), *stored.TeamID)
	require.NotNil(t, stored.SLAID)
	assert.Equal(t, uint64(3), *stored.SLAID)
	assert.Equal(t, testManager.ID, stored.CreatedByID)

	saved := bus.named(events.RequestSaved)
	require.Len(t, saved, 1)
	event := saved[0].(events.RequestSavedEvent)
	assert.Empty(t, event.OldStatus)
	assert.Equal(t, constants.RequestStatusNew, event.NewStatus)
	assert.Equal(t, uint64(10), event.EquipmentID)

	mutations := bus.named(events.EntityMutated)
	require.Len(t, mutations, 1)
	assert.Equal(t, constants.AuditActionCreate, mutations[0].(events.EntityMutatedEvent).Action)
}

func TestCreateRequestUnknownEquipment(t *testing.T) {
	svc, bus := newRequestServiceFixture(newFakeRequestRepo(), newFakeEquipmentRepo(), &fakeSLARepo{})

	_, err := svc.CreateRequest(testCtx(testManager), dto.CreateMaintenanceRequestDTO{
		Title:       "Spindle vibration",
		RequestType: constants.RequestTypeCorrective,
		Priority:    constants.PriorityHigh,
		EquipmentID: 99,
	})

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, bus.events)
}

func TestUpdateRequestStampsCompletedDate(t *testing.T) {
	requestRepo := newFakeRequestRepo()
	requestRepo.seed(entities.MaintenanceRequest{
		ID:          7,
		Title:       "Belt replacement",
		RequestType: constants.RequestTypeCorrective,
		Priority:    constants.PriorityMedium,
		Status:      constants.RequestStatusInProgress,
		EquipmentID: 10,
	})
	svc, _ := newRequestServiceFixture(requestRepo, newFakeEquipmentRepo(), &fakeSLARepo{})

	repaired := constants.RequestStatusRepaired
	_, err := svc.UpdateRequest(testCtx(testManager), 7, dto.UpdateMaintenanceRequestDTO{Status: &repaired})
	require.NoError(t, err)

	require.NotNil(t, requestRepo.requests[7].CompletedDate)
}

func TestUpdateRequestRestampsCompletedDateOnReentry(t *testing.T) {
	completed := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	requestRepo := newFakeRequestRepo()
	requestRepo.seed(entities.MaintenanceRequest{
		ID:            7,
		Title:         "Belt replacement",
		RequestType:   constants.RequestTypeCorrective,
		Priority:      constants.PriorityMedium,
		Status:        constants.RequestStatusRepaired,
		CompletedDate: &completed,
		EquipmentID:   10,
	})
	svc, _ := newRequestServiceFixture(requestRepo, newFakeEquipmentRepo(), &fakeSLARepo{})
	ctx := testCtx(testManager)

	// Cycling away keeps the old date in place.
	inProgress := constants.RequestStatusInProgress
	_, err := svc.UpdateRequest(ctx, 7, dto.UpdateMaintenanceRequestDTO{Status: &inProgress})
	require.NoError(t, err)
	require.NotNil(t, requestRepo.requests[7].CompletedDate)
	assert.True(t, completed.Equal(*requestRepo.requests[7].CompletedDate))

	// Re-entering Repaired stamps again; the check is against the last
	// persisted status, not whether the request was ever completed.
	repaired := constants.RequestStatusRepaired
	_, err = svc.UpdateRequest(ctx, 7, dto.UpdateMaintenanceRequestDTO{Status: &repaired})
	require.NoError(t, err)

	restamped := requestRepo.requests[7].CompletedDate
	require.NotNil(t, restamped)
	assert.True(t, restamped.After(completed))
}

func TestUpdateRequestPublishesStatusTransition(t *testing.T) {
	requestRepo := newFakeRequestRepo()
	requestRepo.seed(entities.MaintenanceRequest{
		ID:          7,
		Title:       "Belt replacement",
		Status:      constants.RequestStatusNew,
		EquipmentID: 10,
		Priority:    constants.PriorityMedium,
		RequestType: constants.RequestTypeCorrective,
	})
	svc, bus := newRequestServiceFixture(requestRepo, newFakeEquipmentRepo(), &fakeSLARepo{})

	inProgress := constants.RequestStatusInProgress
	_, err := svc.UpdateRequest(testCtx(testManager), 7, dto.UpdateMaintenanceRequestDTO{Status: &inProgress})
	require.NoError(t, err)

	saved := bus.named(events.RequestSaved)
	require.Len(t, saved, 1)
	event := saved[0].(events.RequestSavedEvent)
	assert.Equal(t, constants.RequestStatusNew, event.OldStatus)
	assert.Equal(t, constants.RequestStatusInProgress, event.NewStatus)

	actorID := requestRepo.requests[7].UpdatedByID
	require.NotNil(t, actorID)
	assert.Equal(t, testManager.ID, *actorID)
}

func TestUpdateRequestRematchesSLAOnPriorityChange(t *testing.T) {
	slaID := uint64(3)
	requestRepo := newFakeRequestRepo()
	requestRepo.seed(entities.MaintenanceRequest{
		ID:          7,
		Title:       "Belt replacement",
		Status:      constants.RequestStatusNew,
		EquipmentID: 10,
		Priority:    constants.PriorityHigh,
		RequestType: constants.RequestTypeCorrective,
		SLAID:       &slaID,
	})
	// No policy covers Low, so the reference is cleared rather than kept
	// pointing at the High policy.
	svc, _ := newRequestServiceFixture(requestRepo, newFakeEquipmentRepo(), &fakeSLARepo{match: &entities.SLA{
		ID:          slaID,
		Priority:    constants.PriorityHigh,
		RequestType: constants.SLARequestTypeBoth,
		IsActive:    true,
	}})

	low := constants.PriorityLow
	_, err := svc.UpdateRequest(testCtx(testManager), 7, dto.UpdateMaintenanceRequestDTO{Priority: &low})
	require.NoError(t, err)

	assert.Nil(t, requestRepo.requests[7].SLAID)
}

func TestGetKanbanBoardBucketsByStatus(t *testing.T) {
	requestRepo := newFakeRequestRepo()
	requestRepo.board = []dto.MaintenanceRequestDTO{
		{ID: 1, Status: constants.RequestStatusInProgress},
		{ID: 2, Status: constants.RequestStatusNew},
		{ID: 3, Status: constants.RequestStatusNew},
		{ID: 4, Status: constants.RequestStatusScrap},
	}
	svc, _ := newRequestServiceFixture(requestRepo, newFakeEquipmentRepo(), &fakeSLARepo{})

	board, err := svc.GetKanbanBoard(testCtx(testManager))
	require.NoError(t, err)

	assert.Len(t, board.New, 2)
	assert.Len(t, board.InProgress, 1)
	assert.Empty(t, board.Repaired)
	assert.Len(t, board.Scrap, 1)
	assert.NotNil(t, board.Repaired)
}

func TestDeleteRequestPublishesAudit(t *testing.T) {
	requestRepo := newFakeRequestRepo()
	requestRepo.seed(entities.MaintenanceRequest{ID: 7, Title: "Belt replacement"})
	svc, bus := newRequestServiceFixture(requestRepo, newFakeEquipmentRepo(), &fakeSLARepo{})

	require.NoError(t, svc.DeleteRequest(testCtx(testManager), 7))

	assert.Empty(t, requestRepo.requests)
	mutations := bus.named(events.EntityMutated)
	require.Len(t, mutations, 1)
	event := mutations[0].(events.EntityMutatedEvent)
	assert.Equal(t, constants.AuditActionDelete, event.Action)
	assert.Equal(t, uint64(7), event.EntityID)
	assert.Nil(t, event.After)
	assert.NotNil(t, event.Before)
}

func TestUpdateRequestKeepsExistingCompletedDate(t *testing.T) {
	completed := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	requestRepo := newFakeRequestRepo()
	requestRepo.seed(entities.MaintenanceRequest{
		ID:            7,
		Title:         "Belt replacement",
		Status:        constants.RequestStatusRepaired,
		CompletedDate: &completed,
		Priority:      constants.PriorityMedium,
		RequestType:   constants.RequestTypeCorrective,
	})
	svc, _ := newRequestServiceFixture(requestRepo, newFakeEquipmentRepo(), &fakeSLARepo{})

	title := "Belt replacement and tensioning"
	_, err := svc.UpdateRequest(testCtx(testManager), 7, dto.UpdateMaintenanceRequestDTO{Title: &title})
	require.NoError(t, err)

	stored := requestRepo.requests[7]
	assert.Equal(t, title, stored.Title)
	require.NotNil(t, stored.CompletedDate)
	assert.True(t, completed.Equal(*stored.CompletedDate))
}
