package entities

import "time"

type Notification struct {
	ID          uint64 `json:"id" db:"id"`
	RecipientID uint64 `json:"recipient_id" db:"recipient_id"`

	Type     string `json:"type" db:"type"`
	Title    string `json:"title" db:"title"`
	Message  string `json:"message" db:"message"`
	Priority string `json:"priority" db:"priority"`

	IsRead bool       `json:"is_read" db:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty" db:"read_at"`

	EntityType *string `json:"entity_type,omitempty" db:"entity_type"`
	EntityID   *uint64 `json:"entity_id,omitempty" db:"entity_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
