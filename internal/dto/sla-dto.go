package dto

import (
	"time"

	"gearguard/internal/entities"
)

type CreateSLADTO struct {
	Name            string                    `json:"name" validate:"required,min=2,max=200"`
	Priority        string                    `json:"priority" validate:"required,oneof=Low Medium High Critical"`
	RequestType     string                    `json:"request_type" validate:"required,oneof=Corrective Preventive Both"`
	ResponseTime    entities.SLADuration      `json:"response_time" validate:"required"`
	ResolutionTime  entities.SLADuration      `json:"resolution_time" validate:"required"`
	EscalationRules []entities.EscalationRule `json:"escalation_rules"`
}

type UpdateSLADTO struct {
	Name            *string                   `json:"name" validate:"omitempty,min=2,max=200"`
	Priority        *string                   `json:"priority" validate:"omitempty,oneof=Low Medium High Critical"`
	RequestType     *string                   `json:"request_type" validate:"omitempty,oneof=Corrective Preventive Both"`
	ResponseTime    *entities.SLADuration     `json:"response_time"`
	ResolutionTime  *entities.SLADuration     `json:"resolution_time"`
	EscalationRules []entities.EscalationRule `json:"escalation_rules"`
	IsActive        *bool                     `json:"is_active"`
}

type SLADTO struct {
	ID                uint64                    `json:"id"`
	Name              string                    `json:"name"`
	Priority          string                    `json:"priority"`
	RequestType       string                    `json:"request_type"`
	ResponseTime      entities.SLADuration      `json:"response_time"`
	ResolutionTime    entities.SLADuration      `json:"resolution_time"`
	ResponseMinutes   int                       `json:"response_minutes"`
	ResolutionMinutes int                       `json:"resolution_minutes"`
	EscalationRules   []entities.EscalationRule `json:"escalation_rules"`
	IsActive          bool                      `json:"is_active"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

type MatchSLADTO struct {
	Priority    string `json:"priority" validate:"required,oneof=Low Medium High Critical"`
	RequestType string `json:"request_type" validate:"required,oneof=Corrective Preventive"`
}
