package entities

import (
	"testing"

	"gearguard/pkg/constants"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSparePartRecalculate(t *testing.T) {
	testCases := []struct {
		name         string
		quantity     int
		minimumStock int
		status       string
		wantStatus   string
	}{
		{"above minimum is in stock", 10, 3, "", constants.StockStatusInStock},
		{"at minimum is low stock", 3, 3, "", constants.StockStatusLowStock},
		{"below minimum is low stock", 2, 3, "", constants.StockStatusLowStock},
		{"zero quantity is out of stock", 0, 3, "", constants.StockStatusOutOfStock},
		{"zero wins over zero minimum", 0, 0, "", constants.StockStatusOutOfStock},
		{"discontinued is preserved", 0, 3, constants.StockStatusDiscontinued, constants.StockStatusDiscontinued},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			part := SparePart{
				Quantity:     tc.quantity,
				MinimumStock: tc.minimumStock,
				Status:       tc.status,
			}
			part.Recalculate()
			assert.Equal(t, tc.wantStatus, part.Status)
		})
	}
}

func TestSparePartRecalculateTotalValue(t *testing.T) {
	part := SparePart{
		Quantity:  7,
		UnitPrice: decimal.RequireFromString("12.50"),
	}
	part.Recalculate()

	assert.True(t, decimal.RequireFromString("87.50").Equal(part.TotalValue))
}

func TestSparePartRecalculateDiscontinuedKeepsValue(t *testing.T) {
	part := SparePart{
		Quantity:  4,
		UnitPrice: decimal.NewFromInt(5),
		Status:    constants.StockStatusDiscontinued,
	}
	part.Recalculate()

	assert.Equal(t, constants.StockStatusDiscontinued, part.Status)
	assert.True(t, decimal.NewFromInt(20).Equal(part.TotalValue))
}
