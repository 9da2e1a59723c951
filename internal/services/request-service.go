package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

type RequestServiceInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRequestDTO, uint64, error)
	GetKanbanBoard(ctx context.Context) (*dto.KanbanBoardDTO, error)
	GetCalendarEvents(ctx context.Context, month, year int) ([]dto.CalendarEventDTO, error)
	GetRequestsByEquipment(ctx context.Context, equipmentID uint64) ([]dto.MaintenanceRequestDTO, error)
	FindRequest(ctx context.Context, id uint64) (*dto.MaintenanceRequestDTO, error)
	CreateRequest(ctx context.Context, payload dto.CreateMaintenanceRequestDTO) (*dto.MaintenanceRequestDTO, error)
	UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateMaintenanceRequestDTO) (*dto.MaintenanceRequestDTO, error)
	DeleteRequest(ctx context.Context, id uint64) error
}

type RequestService struct {
	requestRepo   repositories.RequestRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	slaRepo       repositories.SLARepositoryInterface
	bus           eventbus.Publisher
	logger        *zap.Logger
}

func NewRequestService(
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	slaRepo repositories.SLARepositoryInterface,
	bus eventbus.Publisher,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		slaRepo:       slaRepo,
		bus:           bus,
		logger:        logger,
	}
}

func (s *RequestService) GetRequests(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRequestDTO, uint64, error) {
	return s.requestRepo.GetRequests(ctx, filter)
}

// GetKanbanBoard buckets every request by status. The repository returns them
// already ordered by priority then recency, so each bucket keeps that order.
func (s *RequestService) GetKanbanBoard(ctx context.Context) (*dto.KanbanBoardDTO, error) {
	list, err := s.requestRepo.GetRequestsForBoard(ctx)
	if err != nil {
		return nil, err
	}

	board := dto.KanbanBoardDTO{
		New:        []dto.MaintenanceRequestDTO{},
		InProgress: []dto.MaintenanceRequestDTO{},
		Repaired:   []dto.MaintenanceRequestDTO{},
		Scrap:      []dto.MaintenanceRequestDTO{},
	}
	for _, item := range list {
		switch item.Status {
		case constants.RequestStatusNew:
			board.New = append(board.New, item)
		case constants.RequestStatusInProgress:
			board.InProgress = append(board.InProgress, item)
		case constants.RequestStatusRepaired:
			board.Repaired = append(board.Repaired, item)
		case constants.RequestStatusScrap:
			board.Scrap = append(board.Scrap, item)
		}
	}
	return &board, nil
}

func (s *RequestService) GetCalendarEvents(ctx context.Context, month, year int) ([]dto.CalendarEventDTO, error) {
	return s.requestRepo.GetCalendarEvents(ctx, month, year)
}

func (s *RequestService) GetRequestsByEquipment(ctx context.Context, equipmentID uint64) ([]dto.MaintenanceRequestDTO, error) {
	if _, err := s.equipmentRepo.FindEntity(ctx, equipmentID); err != nil {
		return nil, err
	}
	return s.requestRepo.GetRequestsByEquipment(ctx, equipmentID)
}

func (s *RequestService) FindRequest(ctx context.Context, id uint64) (*dto.MaintenanceRequestDTO, error) {
	return s.requestRepo.FindRequest(ctx, id)
}

func (s *RequestService) CreateRequest(ctx context.Context, payload dto.CreateMaintenanceRequestDTO) (*dto.MaintenanceRequestDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindEntity(ctx, payload.EquipmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("equipment %d does not exist", payload.EquipmentID)
		}
		return nil, err
	}

	request := entities.MaintenanceRequest{
		Title:         payload.Title,
		Description:   payload.Description,
		RequestType:   payload.RequestType,
		Priority:      payload.Priority,
		Status:        constants.RequestStatusNew,
		EquipmentID:   equipment.ID,
		TeamID:        payload.TeamID,
		AssignedToID:  payload.AssignedToID,
		ScheduledDate: payload.ScheduledDate,
		EstimatedCost: payload.EstimatedCost,
		CreatedByID:   actor.ID,
	}
	// The team default comes from the equipment's maintenance team.
	if request.TeamID == nil && equipment.TeamID != 0 {
		teamID := equipment.TeamID
		request.TeamID = &teamID
	}
	s.attachSLA(ctx, &request)

	id, err := s.requestRepo.CreateRequest(ctx, &request)
	if err != nil {
		return nil, err
	}
	request.ID = id

	s.bus.Publish(ctx, events.RequestSavedEvent{
		RequestID:   id,
		Title:       request.Title,
		EquipmentID: request.EquipmentID,
		OldStatus:   "",
		NewStatus:   request.Status,
		ActorID:     actor.ID,
	})
	s.publishMutation(ctx, actor.ID, constants.AuditActionCreate, &request, nil)

	return s.requestRepo.FindRequest(ctx, id)
}

func (s *RequestService) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateMaintenanceRequestDTO) (*dto.MaintenanceRequestDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.FindEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *request
	oldStatus := request.Status

	if payload.Title != nil {
		request.Title = *payload.Title
	}
	if payload.Description != nil {
		request.Description = *payload.Description
	}
	if payload.RequestType != nil {
		request.RequestType = *payload.RequestType
	}
	if payload.Priority != nil {
		request.Priority = *payload.Priority
	}
	if payload.Status != nil {
		request.Status = *payload.Status
	}
	if payload.TeamID != nil {
		request.TeamID = payload.TeamID
	}
	if payload.AssignedToID != nil {
		request.AssignedToID = payload.AssignedToID
	}
	if payload.ScheduledDate != nil {
		request.ScheduledDate = payload.ScheduledDate
	}
	if payload.EstimatedCost != nil {
		request.EstimatedCost = *payload.EstimatedCost
	}
	if payload.ActualCost != nil {
		request.ActualCost = *payload.ActualCost
	}

	// The completion date stamps on every entry into Repaired, keyed off the
	// last persisted status. A Repaired request edited in place keeps its
	// date; one that cycles away and back gets the newer time.
	if request.Status == constants.RequestStatusRepaired &&
		oldStatus != constants.RequestStatusRepaired {
		now := time.Now()
		request.CompletedDate = &now
	}

	// Priority or type changes re-match the policy.
	if payload.Priority != nil || payload.RequestType != nil {
		s.attachSLA(ctx, request)
	}

	actorID := actor.ID
	request.UpdatedByID = &actorID

	if err := s.requestRepo.UpdateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.RequestSavedEvent{
		RequestID:   request.ID,
		Title:       request.Title,
		EquipmentID: request.EquipmentID,
		OldStatus:   oldStatus,
		NewStatus:   request.Status,
		ActorID:     actor.ID,
	})
	s.publishMutation(ctx, actor.ID, constants.AuditActionUpdate, request, &before)

	return s.requestRepo.FindRequest(ctx, id)
}

func (s *RequestService) DeleteRequest(ctx context.Context, id uint64) error {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return err
	}

	request, err := s.requestRepo.FindEntity(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requestRepo.DeleteRequest(ctx, id); err != nil {
		return err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionDelete, nil, request)
	return nil
}

// attachSLA finds the active policy for the request's priority and type. A
// miss clears the reference rather than failing the save.
func (s *RequestService) attachSLA(ctx context.Context, request *entities.MaintenanceRequest) {
	sla, err := s.slaRepo.FindMatch(ctx, request.Priority, request.RequestType)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("sla match lookup failed", zap.Error(err))
		}
		request.SLAID = nil
		return
	}
	request.SLAID = &sla.ID
}

func (s *RequestService) publishMutation(ctx context.Context, actorID uint64, action string, after, before *entities.MaintenanceRequest) {
	event := events.EntityMutatedEvent{
		ActorID:    actorID,
		Action:     action,
		EntityType: constants.EntityTypeMaintenanceRequest,
	}
	if after != nil {
		event.EntityID = after.ID
		event.EntityName = after.Title
		event.After, _ = json.Marshal(after)
	}
	if before != nil {
		if event.EntityID == 0 {
			event.EntityID = before.ID
			event.EntityName = before.Title
		}
		event.Before, _ = json.Marshal(before)
	}
	s.bus.Publish(ctx, event)
}
