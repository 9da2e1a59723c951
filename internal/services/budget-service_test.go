package services

import (
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBudgetServiceFixture(budgetRepo *fakeBudgetRepo) (BudgetServiceInterface, *fakePublisher) {
	bus := &fakePublisher{}
	svc := NewBudgetService(budgetRepo, bus, zap.NewNop())
	return svc, bus
}

func seedBudget(spent int64) entities.Budget {
	return entities.Budget{
		ID:              2,
		Name:            "Maintenance 2026",
		Department:      "Maintenance",
		FiscalYear:      2026,
		Period:          constants.BudgetPeriodAnnual,
		AllocatedAmount: decimal.NewFromInt(1000),
		SpentAmount:     decimal.NewFromInt(spent),
		AlertThreshold:  80,
		Status:          constants.BudgetStatusActive,
		StartDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateBudgetRejectsInvertedDates(t *testing.T) {
	svc, bus := newBudgetServiceFixture(newFakeBudgetRepo())

	_, err := svc.CreateBudget(testCtx(testManager), dto.CreateBudgetDTO{
		Name:            "Maintenance 2026",
		Department:      "Maintenance",
		FiscalYear:      2026,
		Period:          constants.BudgetPeriodAnnual,
		AllocatedAmount: decimal.NewFromInt(1000),
		StartDate:       time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, bus.events)
}

func TestAddExpenseRejectsNonPositiveAmount(t *testing.T) {
	budgetRepo := newFakeBudgetRepo(seedBudget(0))
	svc, _ := newBudgetServiceFixture(budgetRepo)

	_, err := svc.AddExpense(testCtx(testManager), 2, dto.AddExpenseDTO{Amount: decimal.Zero})
	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)

	_, err = svc.AddExpense(testCtx(testManager), 2, dto.AddExpenseDTO{Amount: decimal.NewFromInt(-10)})
	require.ErrorAs(t, err, &invalid)

	assert.True(t, budgetRepo.budgets[2].SpentAmount.IsZero())
}

func TestAddExpenseAlertsOnUpwardCrossingOnly(t *testing.T) {
	budgetRepo := newFakeBudgetRepo(seedBudget(700))
	svc, bus := newBudgetServiceFixture(budgetRepo)
	ctx := testCtx(testManager)

	// 70% -> 85% crosses the 80% threshold.
	_, err := svc.AddExpense(ctx, 2, dto.AddExpenseDTO{Amount: decimal.NewFromInt(150)})
	require.NoError(t, err)

	alerts := bus.named(events.BudgetThreshold)
	require.Len(t, alerts, 1)
	alert := alerts[0].(events.BudgetThresholdEvent)
	assert.InDelta(t, 85.0, alert.Utilization, 0.001)
	assert.Equal(t, 80.0, alert.Threshold)
	assert.False(t, alert.Exceeded)

	// 85% -> 90% stays above the threshold and must not re-alert.
	_, err = svc.AddExpense(ctx, 2, dto.AddExpenseDTO{Amount: decimal.NewFromInt(50)})
	require.NoError(t, err)
	assert.Len(t, bus.named(events.BudgetThreshold), 1)
}

func TestAddExpenseMarksExceeded(t *testing.T) {
	budgetRepo := newFakeBudgetRepo(seedBudget(700))
	svc, bus := newBudgetServiceFixture(budgetRepo)

	updated, err := svc.AddExpense(testCtx(testManager), 2, dto.AddExpenseDTO{Amount: decimal.NewFromInt(400)})
	require.NoError(t, err)

	assert.Equal(t, constants.BudgetStatusExceeded, updated.Status)
	alerts := bus.named(events.BudgetThreshold)
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].(events.BudgetThresholdEvent).Exceeded)
}

func TestAddExpenseTracksCategoryBucket(t *testing.T) {
	budget := seedBudget(0)
	budget.Categories = []entities.BudgetCategory{
		{Name: "Parts", Allocated: decimal.NewFromInt(400)},
	}
	budgetRepo := newFakeBudgetRepo(budget)
	svc, _ := newBudgetServiceFixture(budgetRepo)

	_, err := svc.AddExpense(testCtx(testManager), 2, dto.AddExpenseDTO{
		Amount:   decimal.NewFromInt(120),
		Category: "Parts",
	})
	require.NoError(t, err)

	stored := budgetRepo.budgets[2]
	assert.True(t, decimal.NewFromInt(120).Equal(stored.SpentAmount))
	assert.True(t, decimal.NewFromInt(120).Equal(stored.Categories[0].Spent))
}

func TestUpdateBudgetShrinkingAllocationCanCross(t *testing.T) {
	budgetRepo := newFakeBudgetRepo(seedBudget(700))
	svc, bus := newBudgetServiceFixture(budgetRepo)

	smaller := decimal.NewFromInt(800)
	_, err := svc.UpdateBudget(testCtx(testManager), 2, dto.UpdateBudgetDTO{AllocatedAmount: &smaller})
	require.NoError(t, err)

	// 70% of 1000 became 87.5% of 800.
	alerts := bus.named(events.BudgetThreshold)
	require.Len(t, alerts, 1)
	assert.InDelta(t, 87.5, alerts[0].(events.BudgetThresholdEvent).Utilization, 0.001)
}

func TestUpdateBudgetNoAlertWithoutThreshold(t *testing.T) {
	budget := seedBudget(700)
	budget.AlertThreshold = 0
	budgetRepo := newFakeBudgetRepo(budget)
	svc, bus := newBudgetServiceFixture(budgetRepo)

	_, err := svc.AddExpense(testCtx(testManager), 2, dto.AddExpenseDTO{Amount: decimal.NewFromInt(250)})
	require.NoError(t, err)

	assert.Empty(t, bus.named(events.BudgetThreshold))
}
