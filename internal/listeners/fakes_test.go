package listeners

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"
	"gearguard/pkg/types"
)

type fakeEquipmentRepo struct {
	statuses map[uint64]string
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{statuses: map[uint64]string{}}
}

func (r *fakeEquipmentRepo) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	return nil, 0, nil
}

func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepo) FindEntity(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, equipment *entities.Equipment) (uint64, error) {
	return equipment.ID, nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, equipment *entities.Equipment) error {
	return nil
}

func (r *fakeEquipmentRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	r.statuses[id] = status
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error { return nil }

type fakeNotificationRepo struct {
	created []entities.Notification
}

func (r *fakeNotificationRepo) GetNotifications(ctx context.Context, recipientID uint64, filter types.Filter) ([]entities.Notification, uint64, error) {
	return nil, 0, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID uint64) (int64, error) {
	return 0, nil
}

func (r *fakeNotificationRepo) CreateNotification(ctx context.Context, n *entities.Notification) (uint64, error) {
	r.created = append(r.created, *n)
	return uint64(len(r.created)), nil
}

func (r *fakeNotificationRepo) CreateNotifications(ctx context.Context, list []entities.Notification) error {
	r.created = append(r.created, list...)
	return nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, recipientID uint64) error {
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID uint64) error { return nil }

func (r *fakeNotificationRepo) DeleteNotification(ctx context.Context, id, recipientID uint64) error {
	return nil
}

type fakeUserRepo struct {
	users []entities.User
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]entities.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) FindActiveManagers(ctx context.Context, department string) ([]entities.User, error) {
	var out []entities.User
	for _, u := range r.users {
		if !u.IsActive || u.Role != constants.RoleManager {
			continue
		}
		if department != "" && u.Department != department {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) GetUsers(ctx context.Context) ([]entities.User, error) {
	return r.users, nil
}

type fakeAuditRepo struct {
	inserted []entities.AuditLog
}

func (r *fakeAuditRepo) Insert(ctx context.Context, log *entities.AuditLog) error {
	r.inserted = append(r.inserted, *log)
	return nil
}

func (r *fakeAuditRepo) GetLogs(ctx context.Context, filter types.Filter) ([]entities.AuditLog, uint64, error) {
	return nil, 0, nil
}

func (r *fakeAuditRepo) GetLogsByEntity(ctx context.Context, entityType string, entityID uint64) ([]entities.AuditLog, error) {
	return nil, nil
}
