package services

import (
	"context"
	"encoding/json"
	"errors"

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

type SLAServiceInterface interface {
	GetSLAs(ctx context.Context, filter types.Filter) ([]dto.SLADTO, uint64, error)
	FindSLA(ctx context.Context, id uint64) (*dto.SLADTO, error)
	// MatchSLA returns nil without error when no active policy applies.
	MatchSLA(ctx context.Context, payload dto.MatchSLADTO) (*dto.SLADTO, error)
	CreateSLA(ctx context.Context, payload dto.CreateSLADTO) (*dto.SLADTO, error)
	UpdateSLA(ctx context.Context, id uint64, payload dto.UpdateSLADTO) (*dto.SLADTO, error)
	DeleteSLA(ctx context.Context, id uint64) error
}

type SLAService struct {
	slaRepo repositories.SLARepositoryInterface
	bus     eventbus.Publisher
	logger  *zap.Logger
}

func NewSLAService(
	slaRepo repositories.SLARepositoryInterface,
	bus eventbus.Publisher,
	logger *zap.Logger,
) SLAServiceInterface {
	return &SLAService{slaRepo: slaRepo, bus: bus, logger: logger}
}

func (s *SLAService) GetSLAs(ctx context.Context, filter types.Filter) ([]dto.SLADTO, uint64, error) {
	slas, total, err := s.slaRepo.GetSLAs(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]dto.SLADTO, 0, len(slas))
	for i := range slas {
		list = append(list, *mapSLADTO(&slas[i]))
	}
	return list, total, nil
}

func (s *SLAService) FindSLA(ctx context.Context, id uint64) (*dto.SLADTO, error) {
	sla, err := s.slaRepo.FindSLA(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapSLADTO(sla), nil
}

func (s *SLAService) MatchSLA(ctx context.Context, payload dto.MatchSLADTO) (*dto.SLADTO, error) {
	sla, err := s.slaRepo.FindMatch(ctx, payload.Priority, payload.RequestType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapSLADTO(sla), nil
}

func (s *SLAService) CreateSLA(ctx context.Context, payload dto.CreateSLADTO) (*dto.SLADTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateDuration(payload.ResponseTime); err != nil {
		return nil, err
	}
	if err := validateDuration(payload.ResolutionTime); err != nil {
		return nil, err
	}

	sla := entities.SLA{
		Name:            payload.Name,
		Priority:        payload.Priority,
		RequestType:     payload.RequestType,
		ResponseTime:    payload.ResponseTime,
		ResolutionTime:  payload.ResolutionTime,
		EscalationRules: payload.EscalationRules,
		IsActive:        true,
	}
	if sla.EscalationRules == nil {
		sla.EscalationRules = []entities.EscalationRule{}
	}

	id, err := s.slaRepo.CreateSLA(ctx, &sla)
	if err != nil {
		return nil, err
	}
	sla.ID = id

	s.publishMutation(ctx, actor.ID, constants.AuditActionCreate, &sla, nil)
	return mapSLADTO(&sla), nil
}

func (s *SLAService) UpdateSLA(ctx context.Context, id uint64, payload dto.UpdateSLADTO) (*dto.SLADTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	sla, err := s.slaRepo.FindSLA(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *sla

	if payload.Name != nil {
		sla.Name = *payload.Name
	}
	if payload.Priority != nil {
		sla.Priority = *payload.Priority
	}
	if payload.RequestType != nil {
		sla.RequestType = *payload.RequestType
	}
	if payload.ResponseTime != nil {
		if err := validateDuration(*payload.ResponseTime); err != nil {
			return nil, err
		}
		sla.ResponseTime = *payload.ResponseTime
	}
	if payload.ResolutionTime != nil {
		if err := validateDuration(*payload.ResolutionTime); err != nil {
			return nil, err
		}
		sla.ResolutionTime = *payload.ResolutionTime
	}
	if payload.EscalationRules != nil {
		sla.EscalationRules = payload.EscalationRules
	}
	if payload.IsActive != nil {
		sla.IsActive = *payload.IsActive
	}

	if err := s.slaRepo.UpdateSLA(ctx, sla); err != nil {
		return nil, err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionUpdate, sla, &before)
	return mapSLADTO(sla), nil
}

func (s *SLAService) DeleteSLA(ctx context.Context, id uint64) error {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return err
	}

	sla, err := s.slaRepo.FindSLA(ctx, id)
	if err != nil {
		return err
	}

	if err := s.slaRepo.DeleteSLA(ctx, id); err != nil {
		return err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionDelete, nil, sla)
	return nil
}

func validateDuration(d entities.SLADuration) error {
	if d.Value <= 0 {
		return apperrors.NewInvalidInputError("duration value must be positive")
	}
	switch d.Unit {
	case constants.TimeUnitMinutes, constants.TimeUnitHours, constants.TimeUnitDays:
		return nil
	default:
		return apperrors.NewInvalidInputError("unknown time unit %q", d.Unit)
	}
}

func (s *SLAService) publishMutation(ctx context.Context, actorID uint64, action string, after, before *entities.SLA) {
	event := events.EntityMutatedEvent{
		ActorID:    actorID,
		Action:     action,
		EntityType: constants.EntityTypeSLA,
	}
	if after != nil {
		event.EntityID = after.ID
		event.EntityName = after.Name
		event.After, _ = json.Marshal(after)
	}
	if before != nil {
		if event.EntityID == 0 {
			event.EntityID = before.ID
			event.EntityName = before.Name
		}
		event.Before, _ = json.Marshal(before)
	}
	s.bus.Publish(ctx, event)
}

func mapSLADTO(sla *entities.SLA) *dto.SLADTO {
	return &dto.SLADTO{
		ID:                sla.ID,
		Name:              sla.Name,
		Priority:          sla.Priority,
		RequestType:       sla.RequestType,
		ResponseTime:      sla.ResponseTime,
		ResolutionTime:    sla.ResolutionTime,
		ResponseMinutes:   sla.ResponseTime.Minutes(),
		ResolutionMinutes: sla.ResolutionTime.Minutes(),
		EscalationRules:   sla.EscalationRules,
		IsActive:          sla.IsActive,
		CreatedAt:         sla.CreatedAt,
		UpdatedAt:         sla.UpdatedAt,
	}
}
