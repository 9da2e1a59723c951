package services

import (
	"context"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"
	"gearguard/pkg/types"
)

type AuditServiceInterface interface {
	GetLogs(ctx context.Context, filter types.Filter) ([]entities.AuditLog, uint64, error)
	GetLogsByEntity(ctx context.Context, entityType string, entityID uint64) ([]entities.AuditLog, error)
}

type AuditService struct {
	auditRepo repositories.AuditLogRepositoryInterface
}

func NewAuditService(auditRepo repositories.AuditLogRepositoryInterface) AuditServiceInterface {
	return &AuditService{auditRepo: auditRepo}
}

func (s *AuditService) GetLogs(ctx context.Context, filter types.Filter) ([]entities.AuditLog, uint64, error) {
	return s.auditRepo.GetLogs(ctx, filter)
}

func (s *AuditService) GetLogsByEntity(ctx context.Context, entityType string, entityID uint64) ([]entities.AuditLog, error) {
	if !constants.IsValidEntityType(entityType) {
		return nil, apperrors.NewInvalidInputError("unknown entity type %q", entityType)
	}
	return s.auditRepo.GetLogsByEntity(ctx, entityType, entityID)
}
