package services

import (
	"context"
	"encoding/json"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	ScrapEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	bus           eventbus.Publisher
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	bus eventbus.Publisher,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		bus:           bus,
		logger:        logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	return s.equipmentRepo.GetEquipments(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	return s.equipmentRepo.FindEquipment(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	equipment := entities.Equipment{
		Name:         payload.Name,
		SerialNumber: payload.SerialNumber,
		Category:     payload.Category,
		Department:   payload.Department,
		Location:     payload.Location,
		Status:       constants.EquipmentStatusActive,
		Cost:         payload.Cost,
		PurchaseDate: payload.PurchaseDate,
		AssignedToID: payload.AssignedToID,
		TeamID:       payload.TeamID,
		CreatedByID:  actor.ID,
	}

	id, err := s.equipmentRepo.CreateEquipment(ctx, &equipment)
	if err != nil {
		return nil, err
	}
	equipment.ID = id

	s.publishMutation(ctx, actor.ID, constants.AuditActionCreate, &equipment, nil)
	return s.equipmentRepo.FindEquipment(ctx, id)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *equipment

	if payload.Name != nil {
		equipment.Name = *payload.Name
	}
	if payload.SerialNumber != nil {
		equipment.SerialNumber = *payload.SerialNumber
	}
	if payload.Category != nil {
		equipment.Category = *payload.Category
	}
	if payload.Department != nil {
		equipment.Department = *payload.Department
	}
	if payload.Location != nil {
		equipment.Location = *payload.Location
	}
	if payload.Status != nil {
		equipment.Status = *payload.Status
	}
	if payload.Cost != nil {
		equipment.Cost = *payload.Cost
	}
	if payload.PurchaseDate != nil {
		equipment.PurchaseDate = payload.PurchaseDate
	}
	if payload.AssignedToID != nil {
		equipment.AssignedToID = payload.AssignedToID
	}
	if payload.TeamID != nil {
		equipment.TeamID = *payload.TeamID
	}

	if err := s.equipmentRepo.UpdateEquipment(ctx, equipment); err != nil {
		return nil, err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionUpdate, equipment, &before)
	return s.equipmentRepo.FindEquipment(ctx, id)
}

// ScrapEquipment retires the asset directly, outside of any work order.
func (s *EquipmentService) ScrapEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *equipment

	equipment.Status = constants.EquipmentStatusScrapped
	if err := s.equipmentRepo.UpdateStatus(ctx, id, constants.EquipmentStatusScrapped); err != nil {
		return nil, err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionScrap, equipment, &before)
	s.logger.Info("equipment scrapped", zap.Uint64("equipment_id", id), zap.Uint64("actor_id", actor.ID))
	return s.equipmentRepo.FindEquipment(ctx, id)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return err
	}

	equipment, err := s.equipmentRepo.FindEntity(ctx, id)
	if err != nil {
		return err
	}

	if err := s.equipmentRepo.DeleteEquipment(ctx, id); err != nil {
		return err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionDelete, nil, equipment)
	return nil
}

func (s *EquipmentService) publishMutation(ctx context.Context, actorID uint64, action string, after, before *entities.Equipment) {
	event := events.EntityMutatedEvent{
		ActorID:    actorID,
		Action:     action,
		EntityType: constants.EntityTypeEquipment,
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
