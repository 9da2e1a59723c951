package repositories

import (
	"context"
	"errors"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const equipmentSelectFields = `
	e.id, e.name, e.serial_number, e.category, e.department, e.location,
	e.status, e.cost, e.purchase_date, e.assigned_to_id, e.team_id,
	e.created_by_id, e.created_at, e.updated_at,
	au.full_name, t.name, cu.full_name`

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	FindEntity(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, equipment *entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, equipment *entities.Equipment) error
	UpdateStatus(ctx context.Context, id uint64, status string) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func scanEquipmentDTO(row pgx.Row) (*dto.EquipmentDTO, error) {
	var e dto.EquipmentDTO
	var assignedToID, createdByID *uint64
	var teamID uint64
	var assignedToName, teamName, createdByName *string

	err := row.Scan(
		&e.ID, &e.Name, &e.SerialNumber, &e.Category, &e.Department, &e.Location,
		&e.Status, &e.Cost, &e.PurchaseDate, &assignedToID, &teamID,
		&createdByID, &e.CreatedAt, &e.UpdatedAt,
		&assignedToName, &teamName, &createdByName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if assignedToID != nil && assignedToName != nil {
		e.AssignedTo = &dto.ShortUserDTO{ID: *assignedToID, FullName: *assignedToName}
	}
	if teamName != nil {
		e.Team = &dto.ShortTeamDTO{ID: teamID, Name: *teamName}
	}
	if createdByID != nil && createdByName != nil {
		e.CreatedBy = &dto.ShortUserDTO{ID: *createdByID, FullName: *createdByName}
	}
	return &e, nil
}

func equipmentBaseQuery() sq.SelectBuilder {
	return sq.Select(equipmentSelectFields).
		From("equipment e").
		LeftJoin("users au ON e.assigned_to_id = au.id").
		LeftJoin("teams t ON e.team_id = t.id").
		LeftJoin("users cu ON e.created_by_id = cu.id").
		PlaceholderFormat(sq.Dollar)
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	b := equipmentBaseQuery()
	countB := sq.Select("COUNT(*)").From("equipment e").PlaceholderFormat(sq.Dollar)

	for _, field := range []string{"status", "department", "category"} {
		if v, ok := filter.Filter[field]; ok {
			b = b.Where(sq.Eq{"e." + field: v})
			countB = countB.Where(sq.Eq{"e." + field: v})
		}
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := sq.Or{sq.ILike{"e.name": like}, sq.ILike{"e.serial_number": like}}
		b = b.Where(cond)
		countB = countB.Where(cond)
	}

	b = b.OrderBy("e.created_at DESC").
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

	var list []dto.EquipmentDTO
	for rows.Next() {
		item, err := scanEquipmentDTO(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *item)
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

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	query, args, err := equipmentBaseQuery().Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanEquipmentDTO(r.storage.QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) FindEntity(ctx context.Context, id uint64) (*entities.Equipment, error) {
	var e entities.Equipment
	err := r.storage.QueryRow(ctx, `
		SELECT id, name, serial_number, category, department, location, status,
		       cost, purchase_date, assigned_to_id, team_id, created_by_id,
		       created_at, updated_at
		FROM equipment WHERE id = $1`, id).Scan(
		&e.ID, &e.Name, &e.SerialNumber, &e.Category, &e.Department, &e.Location, &e.Status,
		&e.Cost, &e.PurchaseDate, &e.AssignedToID, &e.TeamID, &e.CreatedByID,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, equipment *entities.Equipment) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO equipment
			(name, serial_number, category, department, location, status, cost,
			 purchase_date, assigned_to_id, team_id, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		equipment.Name, equipment.SerialNumber, equipment.Category, equipment.Department,
		equipment.Location, equipment.Status, equipment.Cost, equipment.PurchaseDate,
		equipment.AssignedToID, equipment.TeamID, equipment.CreatedByID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.NewInvalidInputError("equipment with serial number %q already exists", equipment.SerialNumber)
		}
		return 0, err
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, equipment *entities.Equipment) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE equipment SET
			name = $1, serial_number = $2, category = $3, department = $4,
			location = $5, status = $6, cost = $7, purchase_date = $8,
			assigned_to_id = $9, team_id = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11`,
		equipment.Name, equipment.SerialNumber, equipment.Category, equipment.Department,
		equipment.Location, equipment.Status, equipment.Cost, equipment.PurchaseDate,
		equipment.AssignedToID, equipment.TeamID, equipment.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewInvalidInputError("equipment with serial number %q already exists", equipment.SerialNumber)
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateStatus force-sets the lifecycle status; used by the request cascade
// and the scrap action.
func (r *EquipmentRepository) UpdateStatus(ctx context.Context, id uint64, status string) error {
	result, err := r.storage.Exec(ctx,
		"UPDATE equipment SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		status, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM equipment WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
