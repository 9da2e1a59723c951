package repositories

import (
	"context"

	"gearguard/internal/entities"
	"gearguard/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditLogRepositoryInterface interface {
	Insert(ctx context.Context, log *entities.AuditLog) error
	GetLogs(ctx context.Context, filter types.Filter) ([]entities.AuditLog, uint64, error)
	GetLogsByEntity(ctx context.Context, entityType string, entityID uint64) ([]entities.AuditLog, error)
}

type AuditLogRepository struct {
	storage *pgxpool.Pool
}

func NewAuditLogRepository(storage *pgxpool.Pool) AuditLogRepositoryInterface {
	return &AuditLogRepository{storage: storage}
}

func (r *AuditLogRepository) Insert(ctx context.Context, log *entities.AuditLog) error {
	_, err := r.storage.Exec(ctx, `
		INSERT INTO audit_logs
			(user_id, action, entity_type, entity_id, entity_name, before, after)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		log.UserID, log.Action, log.EntityType, log.EntityID, log.EntityName,
		log.Before, log.After,
	)
	return err
}

func (r *AuditLogRepository) GetLogs(ctx context.Context, filter types.Filter) ([]entities.AuditLog, uint64, error) {
	b := sq.Select("id, user_id, action, entity_type, entity_id, entity_name, before, after, created_at").
		From("audit_logs").
		PlaceholderFormat(sq.Dollar)
	countB := sq.Select("COUNT(*)").From("audit_logs").PlaceholderFormat(sq.Dollar)

	for _, field := range []string{"action", "entity_type", "user_id"} {
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

	var logs []entities.AuditLog
	for rows.Next() {
		var l entities.AuditLog
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.Action, &l.EntityType, &l.EntityID,
			&l.EntityName, &l.Before, &l.After, &l.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
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

	return logs, total, nil
}

func (r *AuditLogRepository) GetLogsByEntity(ctx context.Context, entityType string, entityID uint64) ([]entities.AuditLog, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, user_id, action, entity_type, entity_id, entity_name, before, after, created_at
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC`,
		entityType, entityID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []entities.AuditLog
	for rows.Next() {
		var l entities.AuditLog
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.Action, &l.EntityType, &l.EntityID,
			&l.EntityName, &l.Before, &l.After, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
