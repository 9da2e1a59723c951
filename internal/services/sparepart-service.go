package services

import (
	"context"
	"encoding/json"
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

type SparePartServiceInterface interface {
	GetSpareParts(ctx context.Context, filter types.Filter) ([]dto.SparePartDTO, uint64, error)
	GetLowStockParts(ctx context.Context) ([]dto.SparePartDTO, error)
	FindSparePart(ctx context.Context, id uint64) (*dto.SparePartDTO, error)
	CreateSparePart(ctx context.Context, payload dto.CreateSparePartDTO) (*dto.SparePartDTO, error)
	UpdateSparePart(ctx context.Context, id uint64, payload dto.UpdateSparePartDTO) (*dto.SparePartDTO, error)
	AdjustStock(ctx context.Context, id uint64, payload dto.AdjustStockDTO) (*dto.SparePartDTO, error)
	DeleteSparePart(ctx context.Context, id uint64) error
}

type SparePartService struct {
	partRepo repositories.SparePartRepositoryInterface
	bus      eventbus.Publisher
	logger   *zap.Logger
}

func NewSparePartService(
	partRepo repositories.SparePartRepositoryInterface,
	bus eventbus.Publisher,
	logger *zap.Logger,
) SparePartServiceInterface {
	return &SparePartService{
		partRepo: partRepo,
		bus:      bus,
		logger:   logger,
	}
}

func (s *SparePartService) GetSpareParts(ctx context.Context, filter types.Filter) ([]dto.SparePartDTO, uint64, error) {
	parts, total, err := s.partRepo.GetSpareParts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]dto.SparePartDTO, 0, len(parts))
	for i := range parts {
		list = append(list, *mapSparePartDTO(&parts[i]))
	}
	return list, total, nil
}

func (s *SparePartService) GetLowStockParts(ctx context.Context) ([]dto.SparePartDTO, error) {
	parts, err := s.partRepo.GetLowStockParts(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]dto.SparePartDTO, 0, len(parts))
	for i := range parts {
		list = append(list, *mapSparePartDTO(&parts[i]))
	}
	return list, nil
}

func (s *SparePartService) FindSparePart(ctx context.Context, id uint64) (*dto.SparePartDTO, error) {
	part, err := s.partRepo.FindSparePart(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapSparePartDTO(part), nil
}

func (s *SparePartService) CreateSparePart(ctx context.Context, payload dto.CreateSparePartDTO) (*dto.SparePartDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	part := entities.SparePart{
		Name:                payload.Name,
		SKU:                 payload.SKU,
		Category:            payload.Category,
		Quantity:            payload.Quantity,
		MinimumStock:        payload.MinimumStock,
		Unit:                payload.Unit,
		UnitPrice:           payload.UnitPrice,
		CompatibleEquipment: payload.CompatibleEquipment,
	}
	if payload.Supplier != nil {
		part.Supplier = payload.Supplier.Supplier
	}
	part.Recalculate()

	id, err := s.partRepo.CreateSparePart(ctx, &part)
	if err != nil {
		return nil, err
	}
	part.ID = id

	s.publishMutation(ctx, actor.ID, constants.AuditActionCreate, &part, nil)
	s.publishStockAlert(ctx, actor.ID, &part)
	return s.FindSparePart(ctx, id)
}

func (s *SparePartService) UpdateSparePart(ctx context.Context, id uint64, payload dto.UpdateSparePartDTO) (*dto.SparePartDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	part, err := s.partRepo.FindSparePart(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *part

	if payload.Name != nil {
		part.Name = *payload.Name
	}
	if payload.Category != nil {
		part.Category = *payload.Category
	}
	if payload.Quantity != nil {
		part.Quantity = *payload.Quantity
	}
	if payload.MinimumStock != nil {
		part.MinimumStock = *payload.MinimumStock
	}
	if payload.Unit != nil {
		part.Unit = *payload.Unit
	}
	if payload.UnitPrice != nil {
		part.UnitPrice = *payload.UnitPrice
	}
	if payload.Status != nil {
		// Only a switch to or from Discontinued sticks; Recalculate
		// overrides the quantity-derived statuses.
		part.Status = *payload.Status
	}
	if payload.Supplier != nil {
		part.Supplier = payload.Supplier.Supplier
	}
	if payload.CompatibleEquipment != nil {
		part.CompatibleEquipment = payload.CompatibleEquipment
	}
	part.Recalculate()

	if err := s.partRepo.UpdateSparePart(ctx, part); err != nil {
		return nil, err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionUpdate, part, &before)
	s.publishStockAlert(ctx, actor.ID, part)
	return s.FindSparePart(ctx, id)
}

// AdjustStock applies a signed delta to the quantity. A delta that would take
// the quantity negative is rejected; a positive delta stamps lastRestocked.
func (s *SparePartService) AdjustStock(ctx context.Context, id uint64, payload dto.AdjustStockDTO) (*dto.SparePartDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	part, err := s.partRepo.FindSparePart(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *part

	newQuantity := part.Quantity + payload.Adjustment
	if newQuantity < 0 {
		return nil, apperrors.NewInvalidInputError(
			"adjustment of %d would take stock of %q below zero (current %d)",
			payload.Adjustment, part.Name, part.Quantity)
	}
	part.Quantity = newQuantity
	if payload.Adjustment > 0 {
		now := time.Now()
		part.LastRestocked = &now
	}
	part.Recalculate()

	if err := s.partRepo.UpdateSparePart(ctx, part); err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.Uint64("part_id", id),
		zap.Int("adjustment", payload.Adjustment),
		zap.String("reason", payload.Reason),
	)

	s.publishMutation(ctx, actor.ID, constants.AuditActionStockAdjust, part, &before)
	s.publishStockAlert(ctx, actor.ID, part)
	return s.FindSparePart(ctx, id)
}

func (s *SparePartService) DeleteSparePart(ctx context.Context, id uint64) error {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return err
	}

	part, err := s.partRepo.FindSparePart(ctx, id)
	if err != nil {
		return err
	}

	if err := s.partRepo.DeleteSparePart(ctx, id); err != nil {
		return err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionDelete, nil, part)
	return nil
}

// publishStockAlert raises the fan-out whenever a save leaves the part in an
// alert status, so a part that keeps falling keeps alerting until restocked.
func (s *SparePartService) publishStockAlert(ctx context.Context, actorID uint64, part *entities.SparePart) {
	if part.Status != constants.StockStatusLowStock && part.Status != constants.StockStatusOutOfStock {
		return
	}
	s.bus.Publish(ctx, events.StockLevelEvent{
		PartID:       part.ID,
		PartName:     part.Name,
		SKU:          part.SKU,
		Quantity:     part.Quantity,
		MinimumStock: part.MinimumStock,
		Status:       part.Status,
		ActorID:      actorID,
	})
}

func (s *SparePartService) publishMutation(ctx context.Context, actorID uint64, action string, after, before *entities.SparePart) {
	event := events.EntityMutatedEvent{
		ActorID:    actorID,
		Action:     action,
		EntityType: constants.EntityTypeSparePart,
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

func mapSparePartDTO(part *entities.SparePart) *dto.SparePartDTO {
	return &dto.SparePartDTO{
		ID:                  part.ID,
		Name:                part.Name,
		SKU:                 part.SKU,
		Category:            part.Category,
		Quantity:            part.Quantity,
		MinimumStock:        part.MinimumStock,
		Unit:                part.Unit,
		UnitPrice:           part.UnitPrice,
		TotalValue:          part.TotalValue,
		Status:              part.Status,
		Supplier:            part.Supplier,
		CompatibleEquipment: part.CompatibleEquipment,
		LastRestocked:       part.LastRestocked,
		CreatedAt:           part.CreatedAt,
		UpdatedAt:           part.UpdatedAt,
	}
}
