package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateMaintenanceRequestDTO struct {
	Title         string          `json:"title" validate:"required,min=2,max=200"`
	Description   string          `json:"description"`
	RequestType   string          `json:"request_type" validate:"required,oneof=Corrective Preventive"`
	Priority      string          `json:"priority" validate:"required,oneof=Low Medium High Critical"`
	EquipmentID   uint64          `json:"equipment_id" validate:"required"`
	TeamID        *uint64         `json:"team_id"`
	AssignedToID  *uint64         `json:"assigned_to_id"`
	ScheduledDate *time.Time      `json:"scheduled_date"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

type UpdateMaintenanceRequestDTO struct {
	Title         *string          `json:"title" validate:"omitempty,min=2,max=200"`
	Description   *string          `json:"description"`
	RequestType   *string          `json:"request_type" validate:"omitempty,oneof=Corrective Preventive"`
	Priority      *string          `json:"priority" validate:"omitempty,oneof=Low Medium High Critical"`
	Status        *string          `json:"status" validate:"omitempty,oneof=New 'In Progress' Repaired Scrap"`
	TeamID        *uint64          `json:"team_id"`
	AssignedToID  *uint64          `json:"assigned_to_id"`
	ScheduledDate *time.Time       `json:"scheduled_date"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
	ActualCost    *decimal.Decimal `json:"actual_cost"`
}

type MaintenanceRequestDTO struct {
	ID            uint64             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	RequestType   string             `json:"request_type"`
	Priority      string             `json:"priority"`
	Status        string             `json:"status"`
	Equipment     *ShortEquipmentDTO `json:"equipment,omitempty"`
	Team          *ShortTeamDTO      `json:"team,omitempty"`
	AssignedTo    *ShortUserDTO      `json:"assigned_to,omitempty"`
	ScheduledDate *time.Time         `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time         `json:"completed_date,omitempty"`
	EstimatedCost decimal.Decimal    `json:"estimated_cost"`
	ActualCost    decimal.Decimal    `json:"actual_cost"`
	CreatedBy     *ShortUserDTO      `json:"created_by,omitempty"`
	UpdatedBy     *ShortUserDTO      `json:"updated_by,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// KanbanBoardDTO partitions every request into the four status buckets,
// each ordered by priority desc then createdAt desc.
type KanbanBoardDTO struct {
	New        []MaintenanceRequestDTO `json:"new"`
	InProgress []MaintenanceRequestDTO `json:"in_progress"`
	Repaired   []MaintenanceRequestDTO `json:"repaired"`
	Scrap      []MaintenanceRequestDTO `json:"scrap"`
}

// CalendarEventDTO projects a preventive request onto the calendar view.
type CalendarEventDTO struct {
	ID            uint64     `json:"id"`
	Title         string     `json:"title"`
	Start         *time.Time `json:"start"`
	EquipmentName string     `json:"equipment_name"`
	TeamName      string     `json:"team_name"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
}
