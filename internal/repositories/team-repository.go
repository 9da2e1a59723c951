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

const teamFields = "id, name, type, description, team_lead_id, members, is_active, created_at, updated_at"

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context, filter types.Filter) ([]entities.MaintenanceTeam, uint64, error)
	FindTeam(ctx context.Context, id uint64) (*entities.MaintenanceTeam, error)
	CreateTeam(ctx context.Context, team *entities.MaintenanceTeam) (uint64, error)
	UpdateTeam(ctx context.Context, team *entities.MaintenanceTeam) error
	UpdateMembers(ctx context.Context, id uint64, members []uint64) error
	DeleteTeam(ctx context.Context, id uint64) error
}

type TeamRepository struct {
	storage *pgxpool.Pool
}

func NewTeamRepository(storage *pgxpool.Pool) TeamRepositoryInterface {
	return &TeamRepository{storage: storage}
}

// members is a bigint[] column; pgx maps it to []int64, so the boundary
// converts both ways.
func membersToInt64(members []uint64) []int64 {
	out := make([]int64, len(members))
	for i, m := range members {
		out[i] = int64(m)
	}
	return out
}

func scanTeam(row pgx.Row) (*entities.MaintenanceTeam, error) {
	var t entities.MaintenanceTeam
	var members []int64
	err := row.Scan(
		&t.ID, &t.Name, &t.Type, &t.Description, &t.TeamLeadID,
		&members, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	t.Members = make([]uint64, len(members))
	for i, m := range members {
		t.Members[i] = uint64(m)
	}
	return &t, nil
}

func (r *TeamRepository) GetTeams(ctx context.Context, filter types.Filter) ([]entities.MaintenanceTeam, uint64, error) {
	b := sq.Select(teamFields).From("teams").PlaceholderFormat(sq.Dollar)
	countB := sq.Select("COUNT(*)").From("teams").PlaceholderFormat(sq.Dollar)

	for _, field := range []string{"type", "is_active"} {
		if v, ok := filter.Filter[field]; ok {
			b = b.Where(sq.Eq{field: v})
			countB = countB.Where(sq.Eq{field: v})
		}
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		b = b.Where(sq.ILike{"name": like})
		countB = countB.Where(sq.ILike{"name": like})
	}

	b = b.OrderBy("name").
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

	var teams []entities.MaintenanceTeam
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, 0, err
		}
		teams = append(teams, *t)
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

	return teams, total, nil
}

func (r *TeamRepository) FindTeam(ctx context.Context, id uint64) (*entities.MaintenanceTeam, error) {
	return scanTeam(r.storage.QueryRow(ctx, "SELECT "+teamFields+" FROM teams WHERE id = $1", id))
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team *entities.MaintenanceTeam) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO teams (name, type, description, team_lead_id, members, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		team.Name, team.Type, team.Description, team.TeamLeadID,
		membersToInt64(team.Members), team.IsActive,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.NewInvalidInputError("team with name %q already exists", team.Name)
		}
		return 0, err
	}
	return id, nil
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, team *entities.MaintenanceTeam) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE teams SET
			name = $1, type = $2, description = $3, team_lead_id = $4,
			members = $5, is_active = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7`,
		team.Name, team.Type, team.Description, team.TeamLeadID,
		membersToInt64(team.Members), team.IsActive, team.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewInvalidInputError("team with name %q already exists", team.Name)
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) UpdateMembers(ctx context.Context, id uint64, members []uint64) error {
	result, err := r.storage.Exec(ctx,
		"UPDATE teams SET members = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		membersToInt64(members), id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM teams WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
