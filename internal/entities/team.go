package entities

import "gearguard/pkg/types"

type MaintenanceTeam struct {
	ID          uint64 `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Type        string `json:"type" db:"type"`
	Description string `json:"description" db:"description"`

	TeamLeadID *uint64  `json:"team_lead_id,omitempty" db:"team_lead_id"`
	Members    []uint64 `json:"members" db:"members"`

	IsActive bool `json:"is_active" db:"is_active"`

	types.BaseEntity
}

func (t *MaintenanceTeam) HasMember(userID uint64) bool {
	for _, id := range t.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// RemoveMember deletes the member if present and reports whether the set
// changed. Removing an absent id is a no-op.
func (t *MaintenanceTeam) RemoveMember(userID uint64) bool {
	for i, id := range t.Members {
		if id == userID {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return true
		}
	}
	return false
}
