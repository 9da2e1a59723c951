package dto

import "time"

type CreateTeamDTO struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Type        string   `json:"type" validate:"required"`
	Description string   `json:"description"`
	TeamLeadID  *uint64  `json:"team_lead_id"`
	Members     []uint64 `json:"members"`
}

type UpdateTeamDTO struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	TeamLeadID  *uint64 `json:"team_lead_id"`
	IsActive    *bool   `json:"is_active"`
}

type TeamMemberDTO struct {
	UserID uint64 `json:"user_id" validate:"required"`
}

type TeamDTO struct {
	ID          uint64         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	TeamLead    *ShortUserDTO  `json:"team_lead,omitempty"`
	Members     []ShortUserDTO `json:"members"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
