package dto

import "time"

type AttachmentDTO struct {
	ID         uint64    `json:"id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	EntityType string    `json:"entity_type"`
	EntityID   uint64    `json:"entity_id"`
	UploadedBy uint64    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
