package repositories

import (
	"context"
	"errors"

	"gearguard/internal/entities"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"
	"gearguard/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const slaFields = `id, name, priority, request_type, response_time, resolution_time,
	escalation_rules, is_active, created_at, updated_at`

type SLARepositoryInterface interface {
	GetSLAs(ctx context.Context, filter types.Filter) ([]entities.SLA, uint64, error)
	FindSLA(ctx context.Context, id uint64) (*entities.SLA, error)
	// FindMatch returns the active policy for the priority and request type,
	// or ErrNotFound when no policy applies.
	FindMatch(ctx context.Context, priority, requestType string) (*entities.SLA, error)
	CreateSLA(ctx context.Context, sla *entities.SLA) (uint64, error)
	UpdateSLA(ctx context.Context, sla *entities.SLA) error
	DeleteSLA(ctx context.Context, id uint64) error
}

type SLARepository struct {
	storage *pgxpool.Pool
}

func NewSLARepository(storage *pgxpool.Pool) SLARepositoryInterface {
	return &SLARepository{storage: storage}
}

func scanSLA(row pgx.Row) (*entities.SLA, error) {
	var s entities.SLA
	err := row.Scan(
		&s.ID, &s.Name, &s.Priority, &s.RequestType, &s.ResponseTime,
		&s.ResolutionTime, &s.EscalationRules, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SLARepository) GetSLAs(ctx context.Context, filter types.Filter) ([]entities.SLA, uint64, error) {
	b := sq.Select(slaFields).From("slas").PlaceholderFormat(sq.Dollar)
	countB := sq.Select("COUNT(*)").From("slas").PlaceholderFormat(sq.Dollar)

	for _, field := range []string{"priority", "request_type", "is_active"} {
		if v, ok := filter.Filter[field]; ok {
			b = b.Where(sq.Eq{field: v})
			countB = countB.Where(sq.Eq{field: v})
		}
	}

	b = b.OrderBy("priority", "name").
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

	var slas []entities.SLA
	for rows.Next() {
		s, err := scanSLA(rows)
		if err != nil {
			return nil, 0, err
		}
		slas = append(slas, *s)
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

	return slas, total, nil
}

func (r *SLARepository) FindSLA(ctx context.Context, id uint64) (*entities.SLA, error) {
	return scanSLA(r.storage.QueryRow(ctx, "SELECT "+slaFields+" FROM slas WHERE id = $1", id))
}

func (r *SLARepository) FindMatch(ctx context.Context, priority, requestType string) (*entities.SLA, error) {
	// An exact request-type match wins over a Both policy.
	return scanSLA(r.storage.QueryRow(ctx, `
		SELECT `+slaFields+`
		FROM slas
		WHERE is_active = true AND priority = $1 AND request_type IN ($2, $3)
		ORDER BY CASE request_type WHEN $2 THEN 0 ELSE 1 END
		LIMIT 1`,
		priority, requestType, constants.SLARequestTypeBoth))
}

func (r *SLARepository) CreateSLA(ctx context.Context, sla *entities.SLA) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO slas
			(name, priority, request_type, response_time, resolution_time,
			 escalation_rules, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		sla.Name, sla.Priority, sla.RequestType, sla.ResponseTime,
		sla.ResolutionTime, sla.EscalationRules, sla.IsActive,
	).Scan(&id)
	return id, err
}

func (r *SLARepository) UpdateSLA(ctx context.Context, sla *entities.SLA) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE slas SET
			name = $1, priority = $2, request_type = $3, response_time = $4,
			resolution_time = $5, escalation_rules = $6, is_active = $7,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $8`,
		sla.Name, sla.Priority, sla.RequestType, sla.ResponseTime,
		sla.ResolutionTime, sla.EscalationRules, sla.IsActive, sla.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SLARepository) DeleteSLA(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM slas WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
