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

type BudgetServiceInterface interface {
	GetBudgets(ctx context.Context, filter types.Filter) ([]dto.BudgetDTO, uint64, error)
	FindBudget(ctx context.Context, id uint64) (*dto.BudgetDTO, error)
	CreateBudget(ctx context.Context, payload dto.CreateBudgetDTO) (*dto.BudgetDTO, error)
	UpdateBudget(ctx context.Context, id uint64, payload dto.UpdateBudgetDTO) (*dto.BudgetDTO, error)
	AddExpense(ctx context.Context, id uint64, payload dto.AddExpenseDTO) (*dto.BudgetDTO, error)
	DeleteBudget(ctx context.Context, id uint64) error
}

type BudgetService struct {
	budgetRepo repositories.BudgetRepositoryInterface
	bus        eventbus.Publisher
	logger     *zap.Logger
}

func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	bus eventbus.Publisher,
	logger *zap.Logger,
) BudgetServiceInterface {
	return &BudgetService{
		budgetRepo: budgetRepo,
		bus:        bus,
		logger:     logger,
	}
}

func (s *BudgetService) GetBudgets(ctx context.Context, filter types.Filter) ([]dto.BudgetDTO, uint64, error) {
	budgets, total, err := s.budgetRepo.GetBudgets(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]dto.BudgetDTO, 0, len(budgets))
	for i := range budgets {
		list = append(list, *mapBudgetDTO(&budgets[i]))
	}
	return list, total, nil
}

func (s *BudgetService) FindBudget(ctx context.Context, id uint64) (*dto.BudgetDTO, error) {
	budget, err := s.budgetRepo.FindBudget(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapBudgetDTO(budget), nil
}

func (s *BudgetService) CreateBudget(ctx context.Context, payload dto.CreateBudgetDTO) (*dto.BudgetDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !payload.EndDate.After(payload.StartDate) {
		return nil, apperrors.NewInvalidInputError("end date must be after start date")
	}

	budget := entities.Budget{
		Name:            payload.Name,
		Department:      payload.Department,
		FiscalYear:      payload.FiscalYear,
		Period:          payload.Period,
		AllocatedAmount: payload.AllocatedAmount,
		AlertThreshold:  payload.AlertThreshold,
		StartDate:       payload.StartDate,
		EndDate:         payload.EndDate,
		Categories:      payload.Categories,
		CreatedByID:     actor.ID,
	}
	if budget.Categories == nil {
		budget.Categories = []entities.BudgetCategory{}
	}
	budget.Recalculate(time.Now())

	id, err := s.budgetRepo.CreateBudget(ctx, &budget)
	if err != nil {
		return nil, err
	}
	budget.ID = id

	s.publishMutation(ctx, actor.ID, constants.AuditActionCreate, &budget, nil)
	return mapBudgetDTO(&budget), nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, id uint64, payload dto.UpdateBudgetDTO) (*dto.BudgetDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.FindBudget(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *budget
	oldUtilization := budget.UtilizationPercent()

	if payload.Name != nil {
		budget.Name = *payload.Name
	}
	if payload.AllocatedAmount != nil {
		budget.AllocatedAmount = *payload.AllocatedAmount
	}
	if payload.AlertThreshold != nil {
		budget.AlertThreshold = *payload.AlertThreshold
	}
	if payload.StartDate != nil {
		budget.StartDate = *payload.StartDate
	}
	if payload.EndDate != nil {
		budget.EndDate = *payload.EndDate
	}
	if payload.Categories != nil {
		budget.Categories = payload.Categories
	}
	if !budget.EndDate.After(budget.StartDate) {
		return nil, apperrors.NewInvalidInputError("end date must be after start date")
	}
	budget.Recalculate(time.Now())

	if err := s.budgetRepo.UpdateBudget(ctx, budget); err != nil {
		return nil, err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionUpdate, budget, &before)
	// Shrinking the allocation can push utilization over the threshold too.
	s.publishAlertIfCrossed(ctx, actor.ID, oldUtilization, budget)
	return mapBudgetDTO(budget), nil
}

// AddExpense records spending against the budget and, when a category is
// named, against that category's sub-bucket.
func (s *BudgetService) AddExpense(ctx context.Context, id uint64, payload dto.AddExpenseDTO) (*dto.BudgetDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if payload.Amount.IsNegative() || payload.Amount.IsZero() {
		return nil, apperrors.NewInvalidInputError("expense amount must be positive")
	}

	budget, err := s.budgetRepo.FindBudget(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *budget
	oldUtilization := budget.UtilizationPercent()

	budget.AddExpense(payload.Amount, payload.Category)
	budget.Recalculate(time.Now())

	if err := s.budgetRepo.UpdateBudget(ctx, budget); err != nil {
		return nil, err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionExpenseAdd, budget, &before)
	s.publishAlertIfCrossed(ctx, actor.ID, oldUtilization, budget)
	return mapBudgetDTO(budget), nil
}

func (s *BudgetService) DeleteBudget(ctx context.Context, id uint64) error {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return err
	}

	budget, err := s.budgetRepo.FindBudget(ctx, id)
	if err != nil {
		return err
	}

	if err := s.budgetRepo.DeleteBudget(ctx, id); err != nil {
		return err
	}

	s.publishMutation(ctx, actor.ID, constants.AuditActionDelete, nil, budget)
	return nil
}

// publishAlertIfCrossed fires on the upward crossing only: utilization was
// below the threshold before the write and is at or above it after. Staying
// above the threshold does not re-alert.
func (s *BudgetService) publishAlertIfCrossed(ctx context.Context, actorID uint64, oldUtilization float64, budget *entities.Budget) {
	if budget.AlertThreshold <= 0 {
		return
	}
	newUtilization := budget.UtilizationPercent()
	if oldUtilization >= budget.AlertThreshold || newUtilization < budget.AlertThreshold {
		return
	}
	s.bus.Publish(ctx, events.BudgetThresholdEvent{
		BudgetID:    budget.ID,
		BudgetName:  budget.Name,
		Department:  budget.Department,
		Utilization: newUtilization,
		Threshold:   budget.AlertThreshold,
		Exceeded:    budget.Status == constants.BudgetStatusExceeded,
		ActorID:     actorID,
	})
}

func (s *BudgetService) publishMutation(ctx context.Context, actorID uint64, action string, after, before *entities.Budget) {
	event := events.EntityMutatedEvent{
		ActorID:    actorID,
		Action:     action,
		EntityType: constants.EntityTypeBudget,
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

func mapBudgetDTO(budget *entities.Budget) *dto.BudgetDTO {
	return &dto.BudgetDTO{
		ID:              budget.ID,
		Name:            budget.Name,
		Department:      budget.Department,
		FiscalYear:      budget.FiscalYear,
		Period:          budget.Period,
		AllocatedAmount: budget.AllocatedAmount,
		SpentAmount:     budget.SpentAmount,
		RemainingAmount: budget.RemainingAmount,
		Utilization:     budget.UtilizationPercent(),
		Status:          budget.Status,
		AlertThreshold:  budget.AlertThreshold,
		StartDate:       budget.StartDate,
		EndDate:         budget.EndDate,
		Categories:      budget.Categories,
		CreatedAt:       budget.CreatedAt,
		UpdatedAt:       budget.UpdatedAt,
	}
}
