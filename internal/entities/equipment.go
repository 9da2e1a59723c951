package entities

import (
	"time"

	"gearguard/pkg/types"

	"github.com/shopspring/decimal"
)

type Equipment struct {
	ID           uint64 `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	SerialNumber string `json:"serial_number" db:"serial_number"`

	Category   string `json:"category" db:"category"`
	Department string `json:"department" db:"department"`
	Location   string `json:"location" db:"location"`

	// Status is driven by the latest non-terminal maintenance request,
	// except for the direct scrap action which forces Scrapped.
	Status string `json:"status" db:"status"`

	Cost         decimal.Decimal `json:"cost" db:"cost"`
	PurchaseDate *time.Time      `json:"purchase_date,omitempty" db:"purchase_date"`

	AssignedToID *uint64 `json:"assigned_to_id,omitempty" db:"assigned_to_id"`
	TeamID       uint64  `json:"team_id" db:"team_id"`
	CreatedByID  uint64  `json:"created_by_id" db:"created_by_id"`

	types.BaseEntity
}
