package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

type NotificationServiceInterface interface {
	GetMyNotifications(ctx context.Context, filter types.Filter) ([]dto.NotificationDTO, uint64, error)
	CountMyUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id uint64) error
	MarkAllRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id uint64) error
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepositoryInterface,
	logger *zap.Logger,
) NotificationServiceInterface {
	return &NotificationService{notificationRepo: notificationRepo, logger: logger}
}

// Notifications are scoped to the recipient; every operation resolves the
// acting user and never accepts a recipient id from the request.

func (s *NotificationService) GetMyNotifications(ctx context.Context, filter types.Filter) ([]dto.NotificationDTO, uint64, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	list, total, err := s.notificationRepo.GetNotifications(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.NotificationDTO, 0, len(list))
	for i := range list {
		out = append(out, *mapNotificationDTO(&list[i]))
	}
	return out, total, nil
}

func (s *NotificationService) CountMyUnread(ctx context.Context) (int64, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	return s.notificationRepo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint64) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) DeleteNotification(ctx context.Context, id uint64) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	return s.notificationRepo.DeleteNotification(ctx, id, userID)
}

func mapNotificationDTO(n *entities.Notification) *dto.NotificationDTO {
	return &dto.NotificationDTO{
		ID:         n.ID,
		Type:       n.Type,
		Title:      n.Title,
		Message:    n.Message,
		Priority:   n.Priority,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
		CreatedAt:  n.CreatedAt,
	}
}
