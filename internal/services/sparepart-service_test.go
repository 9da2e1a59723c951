package services

import (
	"testing"

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

func newSparePartServiceFixture(partRepo *fakeSparePartRepo) (SparePartServiceInterface, *fakePublisher) {
	bus := &fakePublisher{}
	svc := NewSparePartService(partRepo, bus, zap.NewNop())
	return svc, bus
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	partRepo := newFakeSparePartRepo(entities.SparePart{
		ID:           4,
		Name:         "Bearing 6204",
		Quantity:     3,
		MinimumStock: 1,
		Status:       constants.StockStatusInStock,
	})
	svc, bus := newSparePartServiceFixture(partRepo)

	_, err := svc.AdjustStock(testCtx(testManager), 4, dto.AdjustStockDTO{
		Adjustment: -5,
		Reason:     "stocktake correction",
	})

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 3, partRepo.parts[4].Quantity)
	assert.Empty(t, bus.events)
}

func TestAdjustStockStampsLastRestocked(t *testing.T) {
	partRepo := newFakeSparePartRepo(entities.SparePart{
		ID:           4,
		Name:         "Bearing 6204",
		Quantity:     2,
		MinimumStock: 1,
		Status:       constants.StockStatusInStock,
	})
	svc, _ := newSparePartServiceFixture(partRepo)

	_, err := svc.AdjustStock(testCtx(testManager), 4, dto.AdjustStockDTO{
		Adjustment: 10,
		Reason:     "delivery received",
	})
	require.NoError(t, err)

	stored := partRepo.parts[4]
	assert.Equal(t, 12, stored.Quantity)
	assert.NotNil(t, stored.LastRestocked)
}

func TestAdjustStockConsumptionLeavesLastRestocked(t *testing.T) {
	partRepo := newFakeSparePartRepo(entities.SparePart{
		ID:           4,
		Name:         "Bearing 6204",
		Quantity:     10,
		MinimumStock: 1,
		Status:       constants.StockStatusInStock,
	})
	svc, _ := newSparePartServiceFixture(partRepo)

	_, err := svc.AdjustStock(testCtx(testManager), 4, dto.AdjustStockDTO{
		Adjustment: -2,
		Reason:     "used on work order",
	})
	require.NoError(t, err)

	assert.Nil(t, partRepo.parts[4].LastRestocked)
}

func TestAdjustStockAlertsWhileStockIsLow(t *testing.T) {
	partRepo := newFakeSparePartRepo(entities.SparePart{
		ID:           4,
		Name:         "Bearing 6204",
		SKU:          "BRG-6204",
		Quantity:     10,
		MinimumStock: 4,
		Status:       constants.StockStatusInStock,
	})
	svc, bus := newSparePartServiceFixture(partRepo)
	ctx := testCtx(testManager)

	_, err := svc.AdjustStock(ctx, 4, dto.AdjustStockDTO{Adjustment: -7, Reason: "used on work order"})
	require.NoError(t, err)

	alerts := bus.named(events.StockLevel)
	require.Len(t, alerts, 1)
	alert := alerts[0].(events.StockLevelEvent)
	assert.Equal(t, constants.StockStatusLowStock, alert.Status)
	assert.Equal(t, 3, alert.Quantity)
	assert.Equal(t, "BRG-6204", alert.SKU)

	// Every save that leaves the part low alerts again; dropping further to
	// zero raises an Out of Stock alert on top of the earlier Low Stock one.
	_, err = svc.AdjustStock(ctx, 4, dto.AdjustStockDTO{Adjustment: -3, Reason: "used on work order"})
	require.NoError(t, err)

	alerts = bus.named(events.StockLevel)
	require.Len(t, alerts, 2)
	assert.Equal(t, constants.StockStatusOutOfStock, alerts[1].(events.StockLevelEvent).Status)
}

func TestAdjustStockHittingZeroAlertsFromLowStock(t *testing.T) {
	partRepo := newFakeSparePartRepo(entities.SparePart{
		ID:           4,
		Name:         "Bearing 6204",
		Quantity:     2,
		MinimumStock: 4,
		Status:       constants.StockStatusLowStock,
	})
	svc, bus := newSparePartServiceFixture(partRepo)

	_, err := svc.AdjustStock(testCtx(testManager), 4, dto.AdjustStockDTO{Adjustment: -2, Reason: "used on work order"})
	require.NoError(t, err)

	alerts := bus.named(events.StockLevel)
	require.Len(t, alerts, 1)
	alert := alerts[0].(events.StockLevelEvent)
	assert.Equal(t, constants.StockStatusOutOfStock, alert.Status)
	assert.Equal(t, 0, alert.Quantity)
}

func TestAdjustStockRecoverySilencesAlerts(t *testing.T) {
	partRepo := newFakeSparePartRepo(entities.SparePart{
		ID:           4,
		Name:         "Bearing 6204",
		Quantity:     2,
		MinimumStock: 4,
		Status:       constants.StockStatusLowStock,
	})
	svc, bus := newSparePartServiceFixture(partRepo)
	ctx := testCtx(testManager)

	_, err := svc.AdjustStock(ctx, 4, dto.AdjustStockDTO{Adjustment: 10, Reason: "delivery received"})
	require.NoError(t, err)
	assert.Empty(t, bus.named(events.StockLevel))

	_, err = svc.AdjustStock(ctx, 4, dto.AdjustStockDTO{Adjustment: -9, Reason: "used on work order"})
	require.NoError(t, err)
	assert.Len(t, bus.named(events.StockLevel), 1)
}

func TestCreateSparePartAlertsWhenStartingLow(t *testing.T) {
	svc, bus := newSparePartServiceFixture(newFakeSparePartRepo())

	created, err := svc.CreateSparePart(testCtx(testManager), dto.CreateSparePartDTO{
		Name:         "Drive belt",
		SKU:          "BLT-100",
		Quantity:     0,
		MinimumStock: 2,
		UnitPrice:    decimal.NewFromInt(15),
	})
	require.NoError(t, err)

	assert.Equal(t, constants.StockStatusOutOfStock, created.Status)
	require.Len(t, bus.named(events.StockLevel), 1)
}

func TestUpdateSparePartDiscontinuedSticks(t *testing.T) {
	partRepo := newFakeSparePartRepo(entities.SparePart{
		ID:           4,
		Name:         "Bearing 6204",
		Quantity:     0,
		MinimumStock: 2,
		Status:       constants.StockStatusOutOfStock,
	})
	svc, bus := newSparePartServiceFixture(partRepo)

	discontinued := constants.StockStatusDiscontinued
	updated, err := svc.UpdateSparePart(testCtx(testManager), 4, dto.UpdateSparePartDTO{Status: &discontinued})
	require.NoError(t, err)

	assert.Equal(t, constants.StockStatusDiscontinued, updated.Status)
	assert.Empty(t, bus.named(events.StockLevel))
}
