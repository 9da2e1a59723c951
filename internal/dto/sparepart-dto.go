package dto

import (
	"encoding/json"
	"time"

	"gearguard/internal/entities"

	"github.com/shopspring/decimal"
)

// SupplierDTO accepts either a bare string (legacy payloads) or the
// structured {name, contact, email} object, and normalizes both into the
// structured form.
type SupplierDTO struct {
	entities.Supplier
}

func (s *SupplierDTO) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		s.Supplier = entities.Supplier{Name: name}
		return nil
	}
	return json.Unmarshal(data, &s.Supplier)
}

type CreateSparePartDTO struct {
	Name                string          `json:"name" validate:"required,min=2,max=200"`
	SKU                 string          `json:"sku" validate:"required,min=2,max=100"`
	Category            string          `json:"category"`
	Quantity            int             `json:"quantity" validate:"gte=0"`
	MinimumStock        int             `json:"minimum_stock" validate:"gte=0"`
	Unit                string          `json:"unit"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	Supplier            *SupplierDTO    `json:"supplier"`
	CompatibleEquipment []uint64        `json:"compatible_equipment"`
}

type UpdateSparePartDTO struct {
	Name                *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Category            *string          `json:"category"`
	Quantity            *int             `json:"quantity" validate:"omitempty,gte=0"`
	MinimumStock        *int             `json:"minimum_stock" validate:"omitempty,gte=0"`
	Unit                *string          `json:"unit"`
	UnitPrice           *decimal.Decimal `json:"unit_price"`
	Status              *string          `json:"status" validate:"omitempty,oneof='In Stock' 'Low Stock' 'Out of Stock' Discontinued"`
	Supplier            *SupplierDTO     `json:"supplier"`
	CompatibleEquipment []uint64         `json:"compatible_equipment"`
}

type AdjustStockDTO struct {
	Adjustment int    `json:"adjustment" validate:"required"`
	Reason     string `json:"reason" validate:"required,min=2,max=500"`
}

type SparePartDTO struct {
	ID                  uint64            `json:"id"`
	Name                string            `json:"name"`
	SKU                 string            `json:"sku"`
	Category            string            `json:"category"`
	Quantity            int               `json:"quantity"`
	MinimumStock        int               `json:"minimum_stock"`
	Unit                string            `json:"unit"`
	UnitPrice           decimal.Decimal   `json:"unit_price"`
	TotalValue          decimal.Decimal   `json:"total_value"`
	Status              string            `json:"status"`
	Supplier            entities.Supplier `json:"supplier"`
	CompatibleEquipment []uint64          `json:"compatible_equipment"`
	LastRestocked       *time.Time        `json:"last_restocked,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}
