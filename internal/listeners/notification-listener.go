package listeners

import (
	"context"
	"fmt"

	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	"gearguard/pkg/eventbus"

	"go.uber.org/zap"
)

// NotificationListener fans stock and budget alerts out to the managers who
// need to act on them. One event produces one notification per recipient.
type NotificationListener struct {
	notificationRepo repositories.NotificationRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	logger           *zap.Logger
}

func NewNotificationListener(
	notificationRepo repositories.NotificationRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.StockLevel, l.HandleStockLevel)
	bus.Subscribe(events.BudgetThreshold, l.HandleBudgetThreshold)
}

func (l *NotificationListener) HandleStockLevel(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.StockLevelEvent)
	if !ok {
		return nil
	}

	managers, err := l.userRepo.FindActiveManagers(ctx, "")
	if err != nil {
		return err
	}
	if len(managers) == 0 {
		l.logger.Warn("stock alert has no recipients", zap.Uint64("part_id", e.PartID))
		return nil
	}

	priority := constants.NotificationPriorityMedium
	title := "Low stock alert"
	if e.Status == constants.StockStatusOutOfStock {
		priority = constants.NotificationPriorityHigh
		title = "Out of stock alert"
	}

	message := fmt.Sprintf("%s (%s) is down to %d; minimum stock is %d",
		e.PartName, e.SKU, e.Quantity, e.MinimumStock)

	return l.notificationRepo.CreateNotifications(ctx, l.fanOut(managers, entities.Notification{
		Type:     constants.NotificationTypeStockAlert,
		Title:    title,
		Message:  message,
		Priority: priority,
	}, constants.EntityTypeSparePart, e.PartID))
}

func (l *NotificationListener) HandleBudgetThreshold(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.BudgetThresholdEvent)
	if !ok {
		return nil
	}

	// Budget alerts stay inside the budget's own department.
	managers, err := l.userRepo.FindActiveManagers(ctx, e.Department)
	if err != nil {
		return err
	}
	if len(managers) == 0 {
		l.logger.Warn("budget alert has no recipients", zap.Uint64("budget_id", e.BudgetID))
		return nil
	}

	priority := constants.NotificationPriorityMedium
	title := "Budget threshold reached"
	message := fmt.Sprintf("Budget %q is at %.1f%% utilization (alert threshold %.0f%%)",
		e.BudgetName, e.Utilization, e.Threshold)
	if e.Exceeded {
		priority = constants.NotificationPriorityHigh
		title = "Budget exceeded"
		message = fmt.Sprintf("Budget %q has been exceeded at %.1f%% utilization",
			e.BudgetName, e.Utilization)
	}

	return l.notificationRepo.CreateNotifications(ctx, l.fanOut(managers, entities.Notification{
		Type:     constants.NotificationTypeBudgetAlert,
		Title:    title,
		Message:  message,
		Priority: priority,
	}, constants.EntityTypeBudget, e.BudgetID))
}

func (l *NotificationListener) fanOut(recipients []entities.User, template entities.Notification, entityType string, entityID uint64) []entities.Notification {
	list := make([]entities.Notification, 0, len(recipients))
	for _, u := range recipients {
		n := template
		n.RecipientID = u.ID
		n.EntityType = &entityType
		n.EntityID = &entityID
		list = append(list, n)
	}
	return list
}
