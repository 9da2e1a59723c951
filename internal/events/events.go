package events

import "encoding/json"

// Event names the listeners subscribe on.
const (
	RequestSaved    = "request.saved"
	StockLevel      = "stock.level"
	BudgetThreshold = "budget.threshold"
	EntityMutated   = "entity.mutated"
)

// RequestSavedEvent fires after a maintenance request is created or updated.
// OldStatus is empty on create.
type RequestSavedEvent struct {
	RequestID   uint64
	Title       string
	EquipmentID uint64
	OldStatus   string
	NewStatus   string
	ActorID     uint64
}

func (RequestSavedEvent) Name() string { return RequestSaved }

// StockLevelEvent fires after a stock write leaves a part at or below its
// minimum. The publisher only raises it on a downward crossing, so each
// crossing fans out exactly once.
type StockLevelEvent struct {
	PartID       uint64
	PartName     string
	SKU          string
	Quantity     int
	MinimumStock int
	Status       string
	ActorID      uint64
}

func (StockLevelEvent) Name() string { return StockLevel }

// BudgetThresholdEvent fires when spending crosses the alert threshold
// upward. Utilization is a percentage at the time of the crossing.
type BudgetThresholdEvent struct {
	BudgetID    uint64
	BudgetName  string
	Department  string
	Utilization float64
	Threshold   float64
	Exceeded    bool
	ActorID     uint64
}

func (BudgetThresholdEvent) Name() string { return BudgetThreshold }

// EntityMutatedEvent carries the audit trail payload for any tracked write.
// Before and After are pre-marshaled snapshots; either may be nil.
type EntityMutatedEvent struct {
	ActorID    uint64
	Action     string
	EntityType string
	EntityID   uint64
	EntityName string
	Before     json.RawMessage
	After      json.RawMessage
}

func (EntityMutatedEvent) Name() string { return EntityMutated }
