package dto

import "time"

type NotificationDTO struct {
	ID         uint64     `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Priority   string     `json:"priority"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	EntityType *string    `json:"entity_type,omitempty"`
	EntityID   *uint64    `json:"entity_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type NotificationFilterDTO struct {
	IsRead *bool
	Type   string
}
