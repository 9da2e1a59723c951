package entities

import (
	"time"

	"gearguard/pkg/constants"
	"gearguard/pkg/types"

	"github.com/shopspring/decimal"
)

// MaintenanceRequest is the work order: the unit of trackable maintenance
// work against one piece of equipment.
type MaintenanceRequest struct {
	ID          uint64 `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`

	RequestType string `json:"request_type" db:"request_type"`
	Priority    string `json:"priority" db:"priority"`
	Status      string `json:"status" db:"status"`

	EquipmentID  uint64  `json:"equipment_id" db:"equipment_id"`
	TeamID       *uint64 `json:"team_id,omitempty" db:"team_id"`
	AssignedToID *uint64 `json:"assigned_to_id,omitempty" db:"assigned_to_id"`
	SLAID        *uint64 `json:"sla_id,omitempty" db:"sla_id"`

	ScheduledDate *time.Time `json:"scheduled_date,omitempty" db:"scheduled_date"`
	CompletedDate *time.Time `json:"completed_date,omitempty" db:"completed_date"`

	EstimatedCost decimal.Decimal `json:"estimated_cost" db:"estimated_cost"`
	ActualCost    decimal.Decimal `json:"actual_cost" db:"actual_cost"`

	CreatedByID uint64  `json:"created_by_id" db:"created_by_id"`
	UpdatedByID *uint64 `json:"updated_by_id,omitempty" db:"updated_by_id"`

	types.BaseEntity
}

// EquipmentStatusFor maps a request status to the equipment status it forces
// on save. The empty second value means the equipment is left untouched.
func EquipmentStatusFor(requestStatus string) (string, bool) {
	switch requestStatus {
	case constants.RequestStatusInProgress:
		return constants.EquipmentStatusUnderMaintenance, true
	case constants.RequestStatusRepaired:
		return constants.EquipmentStatusActive, true
	case constants.RequestStatusScrap:
		return constants.EquipmentStatusScrapped, true
	default:
		return "", false
	}
}
