package services

import (
	"context"
	"io"
	"path/filepath"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"
	"gearguard/pkg/filestorage"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

const maxAttachmentSize = 20 << 20 // 20 MiB

type AttachmentServiceInterface interface {
	Upload(ctx context.Context, file io.Reader, fileName, mimeType string, fileSize int64, entityType string, entityID uint64) (*dto.AttachmentDTO, error)
	GetByEntity(ctx context.Context, entityType string, entityID uint64) ([]dto.AttachmentDTO, error)
	FindAttachment(ctx context.Context, id uint64) (*entities.Attachment, error)
	DeleteAttachment(ctx context.Context, id uint64) error
}

type AttachmentService struct {
	attachmentRepo repositories.AttachmentRepositoryInterface
	storage        filestorage.FileStorageInterface
	logger         *zap.Logger
}

func NewAttachmentService(
	attachmentRepo repositories.AttachmentRepositoryInterface,
	storage filestorage.FileStorageInterface,
	logger *zap.Logger,
) AttachmentServiceInterface {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		storage:        storage,
		logger:         logger,
	}
}

func (s *AttachmentService) Upload(ctx context.Context, file io.Reader, fileName, mimeType string, fileSize int64, entityType string, entityID uint64) (*dto.AttachmentDTO, error) {
	actor, err := utils.GetActingUserFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !constants.IsValidEntityType(entityType) {
		return nil, apperrors.NewInvalidInputError("unknown entity type %q", entityType)
	}
	if fileSize <= 0 || fileSize > maxAttachmentSize {
		return nil, apperrors.NewInvalidInputError("file size must be between 1 byte and %d bytes", maxAttachmentSize)
	}

	path, err := s.storage.Save(file, fileName, entityType)
	if err != nil {
		return nil, err
	}

	attachment := entities.Attachment{
		FileName:     filepath.Base(fileName),
		FilePath:     path,
		FileSize:     fileSize,
		MimeType:     mimeType,
		EntityType:   entityType,
		EntityID:     entityID,
		UploadedByID: actor.ID,
	}

	id, err := s.attachmentRepo.CreateAttachment(ctx, &attachment)
	if err != nil {
		// The row is the source of truth; orphan the file rather than leave
		// a record pointing nowhere.
		if delErr := s.storage.Delete(path); delErr != nil {
			s.logger.Warn("failed to remove orphaned upload", zap.String("path", path), zap.Error(delErr))
		}
		return nil, err
	}
	attachment.ID = id

	return mapAttachmentDTO(&attachment), nil
}

func (s *AttachmentService) GetByEntity(ctx context.Context, entityType string, entityID uint64) ([]dto.AttachmentDTO, error) {
	if !constants.IsValidEntityType(entityType) {
		return nil, apperrors.NewInvalidInputError("unknown entity type %q", entityType)
	}
	list, err := s.attachmentRepo.GetAttachmentsByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttachmentDTO, 0, len(list))
	for i := range list {
		out = append(out, *mapAttachmentDTO(&list[i]))
	}
	return out, nil
}

func (s *AttachmentService) FindAttachment(ctx context.Context, id uint64) (*entities.Attachment, error) {
	return s.attachmentRepo.FindAttachment(ctx, id)
}

func (s *AttachmentService) DeleteAttachment(ctx context.Context, id uint64) error {
	attachment, err := s.attachmentRepo.FindAttachment(ctx, id)
	if err != nil {
		return err
	}
	if err := s.attachmentRepo.DeleteAttachment(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(attachment.FilePath); err != nil {
		s.logger.Warn("failed to remove attachment file",
			zap.String("path", attachment.FilePath), zap.Error(err))
	}
	return nil
}

func mapAttachmentDTO(a *entities.Attachment) *dto.AttachmentDTO {
	return &dto.AttachmentDTO{
		ID:         a.ID,
		FileName:   a.FileName,
		FilePath:   a.FilePath,
		FileSize:   a.FileSize,
		MimeType:   a.MimeType,
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		UploadedBy: a.UploadedByID,
		CreatedAt:  a.CreatedAt,
	}
}
