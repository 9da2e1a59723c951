package entities

import "time"

type Attachment struct {
	ID       uint64 `json:"id" db:"id"`
	FileName string `json:"file_name" db:"file_name"`
	FilePath string `json:"file_path" db:"file_path"`
	FileSize int64  `json:"file_size" db:"file_size"`
	MimeType string `json:"mime_type" db:"mime_type"`

	EntityType string `json:"entity_type" db:"entity_type"`
	EntityID   uint64 `json:"entity_id" db:"entity_id"`

	UploadedByID uint64 `json:"uploaded_by_id" db:"uploaded_by_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
