package entities

import (
	"encoding/json"
	"time"
)

// AuditLog rows are append-only; nothing in the normal flow updates or
// deletes them.
type AuditLog struct {
	ID     uint64  `json:"id" db:"id"`
	UserID *uint64 `json:"user_id,omitempty" db:"user_id"`

	Action     string `json:"action" db:"action"`
	EntityType string `json:"entity_type" db:"entity_type"`
	EntityID   uint64 `json:"entity_id" db:"entity_id"`
	EntityName string `json:"entity_name" db:"entity_name"`

	Before json.RawMessage `json:"before,omitempty" db:"before"`
	After  json.RawMessage `json:"after,omitempty" db:"after"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
