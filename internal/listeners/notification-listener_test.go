package listeners

import (
	"context"
	"testing"

	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/pkg/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStockAlertFansOutToManagers(t *testing.T) {
	userRepo := &fakeUserRepo{users: []entities.User{
		{ID: 1, Role: constants.RoleManager, IsActive: true},
		{ID: 2, Role: constants.RoleManager, IsActive: true},
		{ID: 3, Role: constants.RoleTechnician, IsActive: true},
		{ID: 4, Role: constants.RoleManager, IsActive: false},
	}}
	notificationRepo := &fakeNotificationRepo{}
	listener := NewNotificationListener(notificationRepo, userRepo, zap.NewNop())

	err := listener.HandleStockLevel(context.Background(), events.StockLevelEvent{
		PartID:       4,
		PartName:     "Bearing 6204",
		SKU:          "BRG-6204",
		Quantity:     2,
		MinimumStock: 4,
		Status:       constants.StockStatusLowStock,
	})
	require.NoError(t, err)

	require.Len(t, notificationRepo.created, 2)
	recipients := []uint64{notificationRepo.created[0].RecipientID, notificationRepo.created[1].RecipientID}
	assert.ElementsMatch(t, []uint64{1, 2}, recipients)

	first := notificationRepo.created[0]
	assert.Equal(t, constants.NotificationTypeStockAlert, first.Type)
	assert.Equal(t, "Low stock alert", first.Title)
	assert.Equal(t, constants.NotificationPriorityMedium, first.Priority)
	require.NotNil(t, first.EntityType)
	assert.Equal(t, constants.EntityTypeSparePart, *first.EntityType)
	require.NotNil(t, first.EntityID)
	assert.Equal(t, uint64(4), *first.EntityID)
}

func TestStockAlertOutOfStockIsHighPriority(t *testing.T) {
	userRepo := &fakeUserRepo{users: []entities.User{
		{ID: 1, Role: constants.RoleManager, IsActive: true},
	}}
	notificationRepo := &fakeNotificationRepo{}
	listener := NewNotificationListener(notificationRepo, userRepo, zap.NewNop())

	err := listener.HandleStockLevel(context.Background(), events.StockLevelEvent{
		PartID:   4,
		PartName: "Bearing 6204",
		Status:   constants.StockStatusOutOfStock,
	})
	require.NoError(t, err)

	require.Len(t, notificationRepo.created, 1)
	assert.Equal(t, "Out of stock alert", notificationRepo.created[0].Title)
	assert.Equal(t, constants.NotificationPriorityHigh, notificationRepo.created[0].Priority)
}

func TestBudgetAlertTargetsDepartmentManagers(t *testing.T) {
	userRepo := &fakeUserRepo{users: []entities.User{
		{ID: 1, Role: constants.RoleManager, Department: "Maintenance", IsActive: true},
		{ID: 2, Role: constants.RoleManager, Department: "Facilities", IsActive: true},
	}}
	notificationRepo := &fakeNotificationRepo{}
	listener := NewNotificationListener(notificationRepo, userRepo, zap.NewNop())

	err := listener.HandleBudgetThreshold(context.Background(), events.BudgetThresholdEvent{
		BudgetID:    2,
		BudgetName:  "Maintenance 2026",
		Department:  "Maintenance",
		Utilization: 85,
		Threshold:   80,
	})
	require.NoError(t, err)

	require.Len(t, notificationRepo.created, 1)
	assert.Equal(t, uint64(1), notificationRepo.created[0].RecipientID)
	assert.Equal(t, constants.NotificationTypeBudgetAlert, notificationRepo.created[0].Type)
}

func TestBudgetAlertStaysInsideDepartment(t *testing.T) {
	// Managers of other departments are never pulled in, even when the
	// budget's own department has nobody active to notify.
	userRepo := &fakeUserRepo{users: []entities.User{
		{ID: 1, Role: constants.RoleManager, Department: "Facilities", IsActive: true},
		{ID: 2, Role: constants.RoleManager, Department: "Production", IsActive: true},
	}}
	notificationRepo := &fakeNotificationRepo{}
	listener := NewNotificationListener(notificationRepo, userRepo, zap.NewNop())

	err := listener.HandleBudgetThreshold(context.Background(), events.BudgetThresholdEvent{
		BudgetID:    2,
		BudgetName:  "Maintenance 2026",
		Department:  "Maintenance",
		Utilization: 85,
		Threshold:   80,
	})
	require.NoError(t, err)
	assert.Empty(t, notificationRepo.created)
}

func TestBudgetAlertExceededIsHighPriority(t *testing.T) {
	userRepo := &fakeUserRepo{users: []entities.User{
		{ID: 1, Role: constants.RoleManager, Department: "Maintenance", IsActive: true},
	}}
	notificationRepo := &fakeNotificationRepo{}
	listener := NewNotificationListener(notificationRepo, userRepo, zap.NewNop())

	err := listener.HandleBudgetThreshold(context.Background(), events.BudgetThresholdEvent{
		BudgetID:    2,
		BudgetName:  "Maintenance 2026",
		Department:  "Maintenance",
		Utilization: 110,
		Threshold:   80,
		Exceeded:    true,
	})
	require.NoError(t, err)

	require.Len(t, notificationRepo.created, 1)
	assert.Equal(t, "Budget exceeded", notificationRepo.created[0].Title)
	assert.Equal(t, constants.NotificationPriorityHigh, notificationRepo.created[0].Priority)
}

func TestBudgetAlertNoRecipients(t *testing.T) {
	notificationRepo := &fakeNotificationRepo{}
	listener := NewNotificationListener(notificationRepo, &fakeUserRepo{}, zap.NewNop())

	err := listener.HandleBudgetThreshold(context.Background(), events.BudgetThresholdEvent{
		BudgetID: 2,
	})
	require.NoError(t, err)
	assert.Empty(t, notificationRepo.created)
}
