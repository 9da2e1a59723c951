package repositories

import (
	"context"
	"errors"

	"gearguard/internal/entities"
	"gearguard/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const attachmentFields = "id, file_name, file_path, file_size, mime_type, entity_type, entity_id, uploaded_by_id, created_at"

type AttachmentRepositoryInterface interface {
	FindAttachment(ctx context.Context, id uint64) (*entities.Attachment, error)
	GetAttachmentsByEntity(ctx context.Context, entityType string, entityID uint64) ([]entities.Attachment, error)
	CreateAttachment(ctx context.Context, a *entities.Attachment) (uint64, error)
	DeleteAttachment(ctx context.Context, id uint64) error
}

type AttachmentRepository struct {
	storage *pgxpool.Pool
}

func NewAttachmentRepository(storage *pgxpool.Pool) AttachmentRepositoryInterface {
	return &AttachmentRepository{storage: storage}
}

func (r *AttachmentRepository) FindAttachment(ctx context.Context, id uint64) (*entities.Attachment, error) {
	var a entities.Attachment
	err := r.storage.QueryRow(ctx,
		"SELECT "+attachmentFields+" FROM attachments WHERE id = $1", id).Scan(
		&a.ID, &a.FileName, &a.FilePath, &a.FileSize, &a.MimeType,
		&a.EntityType, &a.EntityID, &a.UploadedByID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AttachmentRepository) GetAttachmentsByEntity(ctx context.Context, entityType string, entityID uint64) ([]entities.Attachment, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT "+attachmentFields+" FROM attachments WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at DESC",
		entityType, entityID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.Attachment
	for rows.Next() {
		var a entities.Attachment
		if err := rows.Scan(
			&a.ID, &a.FileName, &a.FilePath, &a.FileSize, &a.MimeType,
			&a.EntityType, &a.EntityID, &a.UploadedByID, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AttachmentRepository) CreateAttachment(ctx context.Context, a *entities.Attachment) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO attachments
			(file_name, file_path, file_size, mime_type, entity_type, entity_id, uploaded_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		a.FileName, a.FilePath, a.FileSize, a.MimeType, a.EntityType, a.EntityID, a.UploadedByID,
	).Scan(&id)
	return id, err
}

func (r *AttachmentRepository) DeleteAttachment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM attachments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
