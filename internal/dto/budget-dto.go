package dto

import (
	"time"

	"gearguard/internal/entities"

	"github.com/shopspring/decimal"
)

type CreateBudgetDTO struct {
	Name            string                    `json:"name" validate:"required,min=2,max=200"`
	Department      string                    `json:"department" validate:"required"`
	FiscalYear      int                       `json:"fiscal_year" validate:"required,gte=2000,lte=2100"`
	Period          string                    `json:"period" validate:"required,oneof=Monthly Quarterly Annual"`
	AllocatedAmount decimal.Decimal           `json:"allocated_amount" validate:"required"`
	AlertThreshold  float64                   `json:"alert_threshold" validate:"gte=0,lte=100"`
	StartDate       time.Time                 `json:"start_date" validate:"required"`
	EndDate         time.Time                 `json:"end_date" validate:"required"`
	Categories      []entities.BudgetCategory `json:"categories"`
}

type UpdateBudgetDTO struct {
	Name            *string                   `json:"name" validate:"omitempty,min=2,max=200"`
	AllocatedAmount *decimal.Decimal          `json:"allocated_amount"`
	AlertThreshold  *float64                  `json:"alert_threshold" validate:"omitempty,gte=0,lte=100"`
	StartDate       *time.Time                `json:"start_date"`
	EndDate         *time.Time                `json:"end_date"`
	Categories      []entities.BudgetCategory `json:"categories"`
}

type AddExpenseDTO struct {
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Category string          `json:"category"`
}

type BudgetDTO struct {
	ID              uint64                    `json:"id"`
	Name            string                    `json:"name"`
	Department      string                    `json:"department"`
	FiscalYear      int                       `json:"fiscal_year"`
	Period          string                    `json:"period"`
	AllocatedAmount decimal.Decimal           `json:"allocated_amount"`
	SpentAmount     decimal.Decimal           `json:"spent_amount"`
	RemainingAmount decimal.Decimal           `json:"remaining_amount"`
	Utilization     float64                   `json:"utilization"`
	Status          string                    `json:"status"`
	AlertThreshold  float64                   `json:"alert_threshold"`
	StartDate       time.Time                 `json:"start_date"`
	EndDate         time.Time                 `json:"end_date"`
	Categories      []entities.BudgetCategory `json:"categories"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}
