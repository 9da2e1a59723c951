package entities

import (
	"gearguard/pkg/constants"
	"gearguard/pkg/types"
)

// SLADuration is a {value, unit} pair as configured by the operator.
type SLADuration struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// Minutes converts the duration to the canonical figure compliance
// comparisons run on. Unknown units read as plain minutes.
func (d SLADuration) Minutes() int {
	switch d.Unit {
	case constants.TimeUnitHours:
		return d.Value * 60
	case constants.TimeUnitDays:
		return d.Value * 1440
	default:
		return d.Value
	}
}

// EscalationRule is one step of the escalation ladder, stored as jsonb.
type EscalationRule struct {
	Level         int         `json:"level"`
	TimeThreshold SLADuration `json:"time_threshold"`
	NotifyRoles   []string    `json:"notify_roles"`
}

type SLA struct {
	ID   uint64 `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	Priority string `json:"priority" db:"priority"`
	// RequestType is Corrective, Preventive or Both.
	RequestType string `json:"request_type" db:"request_type"`

	ResponseTime   SLADuration `json:"response_time" db:"response_time"`
	ResolutionTime SLADuration `json:"resolution_time" db:"resolution_time"`

	EscalationRules []EscalationRule `json:"escalation_rules" db:"escalation_rules"`

	IsActive bool `json:"is_active" db:"is_active"`

	types.BaseEntity
}

// Matches reports whether this policy applies to a request of the given
// priority and type.
func (s *SLA) Matches(priority, requestType string) bool {
	if !s.IsActive || s.Priority != priority {
		return false
	}
	return s.RequestType == requestType || s.RequestType == constants.SLARequestTypeBoth
}
