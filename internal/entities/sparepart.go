package entities

import (
	"time"

	"gearguard/pkg/constants"
	"gearguard/pkg/types"

	"github.com/shopspring/decimal"
)

// Supplier is stored as a jsonb column. Legacy clients send it as a bare
// string; the DTO layer normalizes that into this shape before it gets here.
type Supplier struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
}

type SparePart struct {
	ID       uint64 `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	SKU      string `json:"sku" db:"sku"`
	Category string `json:"category" db:"category"`

	Quantity     int    `json:"quantity" db:"quantity"`
	MinimumStock int    `json:"minimum_stock" db:"minimum_stock"`
	Unit         string `json:"unit" db:"unit"`

	UnitPrice  decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalValue decimal.Decimal `json:"total_value" db:"total_value"`

	Status   string   `json:"status" db:"status"`
	Supplier Supplier `json:"supplier" db:"supplier"`

	CompatibleEquipment []uint64   `json:"compatible_equipment" db:"compatible_equipment"`
	LastRestocked       *time.Time `json:"last_restocked,omitempty" db:"last_restocked"`

	types.BaseEntity
}

// Recalculate refreshes the derived fields. It must run before every
// persistence write; the columns are never trusted independently of their
// inputs. A Discontinued part keeps its status regardless of quantity.
func (p *SparePart) Recalculate() {
	p.TotalValue = p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))

	if p.Status == constants.StockStatusDiscontinued {
		return
	}
	switch {
	case p.Quantity == 0:
		p.Status = constants.StockStatusOutOfStock
	case p.Quantity <= p.MinimumStock:
		p.Status = constants.StockStatusLowStock
	default:
		p.Status = constants.StockStatusInStock
	}
}
