package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateEquipmentDTO struct {
	Name         string          `json:"name" validate:"required,min=2,max=200"`
	SerialNumber string          `json:"serial_number" validate:"required,min=2,max=100"`
	Category     string          `json:"category" validate:"required"`
	Department   string          `json:"department" validate:"required"`
	Location     string          `json:"location"`
	Cost         decimal.Decimal `json:"cost"`
	PurchaseDate *time.Time      `json:"purchase_date"`
	AssignedToID *uint64         `json:"assigned_to_id"`
	TeamID       uint64          `json:"team_id" validate:"required"`
}

type UpdateEquipmentDTO struct {
	Name         *string          `json:"name" validate:"omitempty,min=2,max=200"`
	SerialNumber *string          `json:"serial_number" validate:"omitempty,min=2,max=100"`
	Category     *string          `json:"category"`
	Department   *string          `json:"department"`
	Location     *string          `json:"location"`
	Status       *string          `json:"status" validate:"omitempty,oneof=Active 'Under Maintenance' Scrapped"`
	Cost         *decimal.Decimal `json:"cost"`
	PurchaseDate *time.Time       `json:"purchase_date"`
	AssignedToID *uint64          `json:"assigned_to_id"`
	TeamID       *uint64          `json:"team_id"`
}

type EquipmentDTO struct {
	ID           uint64          `json:"id"`
	Name         string          `json:"name"`
	SerialNumber string          `json:"serial_number"`
	Category     string          `json:"category"`
	Department   string          `json:"department"`
	Location     string          `json:"location"`
	Status       string          `json:"status"`
	Cost         decimal.Decimal `json:"cost"`
	PurchaseDate *time.Time      `json:"purchase_date,omitempty"`
	AssignedTo   *ShortUserDTO   `json:"assigned_to,omitempty"`
	Team         *ShortTeamDTO   `json:"team,omitempty"`
	CreatedBy    *ShortUserDTO   `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
