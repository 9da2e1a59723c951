package entities

import (
	"time"

	"gearguard/pkg/constants"
	"gearguard/pkg/types"

	"github.com/shopspring/decimal"
)

// BudgetCategory is a sub-bucket inside a budget, stored as jsonb.
type BudgetCategory struct {
	Name      string          `json:"name"`
	Allocated decimal.Decimal `json:"allocated"`
	Spent     decimal.Decimal `json:"spent"`
}

type Budget struct {
	ID         uint64 `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Department string `json:"department" db:"department"`
	FiscalYear int    `json:"fiscal_year" db:"fiscal_year"`
	Period     string `json:"period" db:"period"`

	AllocatedAmount decimal.Decimal `json:"allocated_amount" db:"allocated_amount"`
	SpentAmount     decimal.Decimal `json:"spent_amount" db:"spent_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount" db:"remaining_amount"`

	Status string `json:"status" db:"status"`

	// AlertThreshold is a utilization percentage; crossing it upward fires
	// one notification fan-out per crossing.
	AlertThreshold float64 `json:"alert_threshold" db:"alert_threshold"`

	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`

	Categories []BudgetCategory `json:"categories" db:"categories"`

	CreatedByID uint64 `json:"created_by_id" db:"created_by_id"`

	types.BaseEntity
}

// UtilizationPercent returns spent/allocated as a percentage. A zero
// allocation reads as 0% rather than dividing by zero.
func (b *Budget) UtilizationPercent() float64 {
	if b.AllocatedAmount.IsZero() {
		return 0
	}
	pct, _ := b.SpentAmount.Div(b.AllocatedAmount).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// Recalculate refreshes the derived fields before a persistence write.
func (b *Budget) Recalculate(now time.Time) {
	b.RemainingAmount = b.AllocatedAmount.Sub(b.SpentAmount)

	switch {
	case !b.AllocatedAmount.IsZero() && b.SpentAmount.GreaterThanOrEqual(b.AllocatedAmount):
		b.Status = constants.BudgetStatusExceeded
	case now.After(b.EndDate):
		b.Status = constants.BudgetStatusClosed
	default:
		b.Status = constants.BudgetStatusActive
	}
}

// AddExpense increments the spent amount and, when a matching category
// sub-bucket exists, that bucket's own spent figure. An unknown category is
// silently ignored.
func (b *Budget) AddExpense(amount decimal.Decimal, category string) {
	b.SpentAmount = b.SpentAmount.Add(amount)
	if category == "" {
		return
	}
	for i := range b.Categories {
		if b.Categories[i].Name == category {
			b.Categories[i].Spent = b.Categories[i].Spent.Add(amount)
			return
		}
	}
}
