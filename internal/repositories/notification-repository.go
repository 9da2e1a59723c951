package repositories

import (
	"context"
	"errors"

	"gearguard/internal/entities"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const notificationFields = `id, recipient_id, type, title, message, priority,
	is_read, read_at, entity_type, entity_id, created_at`

type NotificationRepositoryInterface interface {
	GetNotifications(ctx context.Context, recipientID uint64, filter types.Filter) ([]entities.Notification, uint64, error)
	CountUnread(ctx context.Context, recipientID uint64) (int64, error)
	CreateNotification(ctx context.Context, n *entities.Notification) (uint64, error)
	CreateNotifications(ctx context.Context, list []entities.Notification) error
	MarkRead(ctx context.Context, id, recipientID uint64) error
	MarkAllRead(ctx context.Context, recipientID uint64) error
	DeleteNotification(ctx context.Context, id, recipientID uint64) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
}

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage}
}

func scanNotification(row pgx.Row) (*entities.Notification, error) {
	var n entities.Notification
	err := row.Scan(
		&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message, &n.Priority,
		&n.IsRead, &n.ReadAt, &n.EntityType, &n.EntityID, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) GetNotifications(ctx context.Context, recipientID uint64, filter types.Filter) ([]entities.Notification, uint64, error) {
	b := sq.Select(notificationFields).From("notifications").
		Where(sq.Eq{"recipient_id": recipientID}).
		PlaceholderFormat(sq.Dollar)
	countB := sq.Select("COUNT(*)").From("notifications").
		Where(sq.Eq{"recipient_id": recipientID}).
		PlaceholderFormat(sq.Dollar)

	for _, field := range []string{"is_read", "type"} {
		if v, ok := filter.Filter[field]; ok {
			b = b.Where(sq.Eq{field: v})
			countB = countB.Where(sq.Eq{field: v})
		}
	}

	b = b.OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	query, args, err := b.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []entities.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countB.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uint64) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false",
		recipientID).Scan(&count)
	return count, err
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n *entities.Notification) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO notifications
			(recipient_id, type, title, message, priority, entity_type, entity_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		n.RecipientID, n.Type, n.Title, n.Message, n.Priority, n.EntityType, n.EntityID,
	).Scan(&id)
	return id, err
}

// CreateNotifications inserts a fan-out batch in one round trip.
func (r *NotificationRepository) CreateNotifications(ctx context.Context, list []entities.Notification) error {
	if len(list) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, n := range list {
		batch.Queue(`
			INSERT INTO notifications
				(recipient_id, type, title, message, priority, entity_type, entity_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			n.RecipientID, n.Type, n.Title, n.Message, n.Priority, n.EntityType, n.EntityID)
	}
	return r.storage.SendBatch(ctx, batch).Close()
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID uint64) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE notifications
		SET is_read = true, read_at = COALESCE(read_at, CURRENT_TIMESTAMP)
		WHERE id = $1 AND recipient_id = $2`,
		id, recipientID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID uint64) error {
	_, err := r.storage.Exec(ctx, `
		UPDATE notifications
		SET is_read = true, read_at = CURRENT_TIMESTAMP
		WHERE recipient_id = $1 AND is_read = false`,
		recipientID,
	)
	return err
}

func (r *NotificationRepository) DeleteNotification(ctx context.Context, id, recipientID uint64) error {
	result, err := r.storage.Exec(ctx,
		"DELETE FROM notifications WHERE id = $1 AND recipient_id = $2", id, recipientID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
