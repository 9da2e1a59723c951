package repositories

import (
	"context"
	"errors"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestSelectFields = `
	r.id, r.title, r.description, r.request_type, r.priority, r.status,
	r.equipment_id, r.team_id, r.assigned_to_id, r.sla_id,
	r.scheduled_date, r.completed_date, r.estimated_cost, r.actual_cost,
	r.created_by_id, r.updated_by_id, r.created_at, r.updated_at,
	e.name, e.serial_number, t.name, au.full_name, cu.full_name, uu.full_name`

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRequestDTO, uint64, error)
	GetRequestsForBoard(ctx context.Context) ([]dto.MaintenanceRequestDTO, error)
	GetCalendarEvents(ctx context.Context, month, year int) ([]dto.CalendarEventDTO, error)
	GetRequestsByEquipment(ctx context.Context, equipmentID uint64) ([]dto.MaintenanceRequestDTO, error)
	FindRequest(ctx context.Context, id uint64) (*dto.MaintenanceRequestDTO, error)
	FindEntity(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error)
	CreateRequest(ctx context.Context, request *entities.MaintenanceRequest) (uint64, error)
	UpdateRequest(ctx context.Context, request *entities.MaintenanceRequest) error
	DeleteRequest(ctx context.Context, id uint64) error
}

type RequestRepository struct {
	storage *pgxpool.Pool
}

func NewRequestRepository(storage *pgxpool.Pool) RequestRepositoryInterface {
	return &RequestRepository{storage: storage}
}

func requestBaseQuery() sq.SelectBuilder {
	return sq.Select(requestSelectFields).
		From("maintenance_requests r").
		LeftJoin("equipment e ON r.equipment_id = e.id").
		LeftJoin("teams t ON r.team_id = t.id").
		LeftJoin("users au ON r.assigned_to_id = au.id").
		LeftJoin("users cu ON r.created_by_id = cu.id").
		LeftJoin("users uu ON r.updated_by_id = uu.id").
		PlaceholderFormat(sq.Dollar)
}

func scanRequestDTO(row pgx.Row) (*dto.MaintenanceRequestDTO, error) {
	var d dto.MaintenanceRequestDTO
	var equipmentID uint64
	var teamID, assignedToID, updatedByID, slaID *uint64
	var createdByID uint64
	var equipmentName, equipmentSerial, teamName, assignedToName, createdByName, updatedByName *string

	err := row.Scan(
		&d.ID, &d.Title, &d.Description, &d.RequestType, &d.Priority, &d.Status,
		&equipmentID, &teamID, &assignedToID, &slaID,
		&d.ScheduledDate, &d.CompletedDate, &d.EstimatedCost, &d.ActualCost,
		&createdByID, &updatedByID, &d.CreatedAt, &d.UpdatedAt,
		&equipmentName, &equipmentSerial, &teamName, &assignedToName, &createdByName, &updatedByName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if equipmentName != nil {
		serial := ""
		if equipmentSerial != nil {
			serial = *equipmentSerial
		}
		d.Equipment = &dto.ShortEquipmentDTO{ID: equipmentID, Name: *equipmentName, SerialNumber: serial}
	}
	if teamID != nil && teamName != nil {
		d.Team = &dto.ShortTeamDTO{ID: *teamID, Name: *teamName}
	}
	if assignedToID != nil && assignedToName != nil {
		d.AssignedTo = &dto.ShortUserDTO{ID: *assignedToID, FullName: *assignedToName}
	}
	if createdByName != nil {
		d.CreatedBy = &dto.ShortUserDTO{ID: createdByID, FullName: *createdByName}
	}
	if updatedByID != nil && updatedByName != nil {
		d.UpdatedBy = &dto.ShortUserDTO{ID: *updatedByID, FullName: *updatedByName}
	}
	return &d, nil
}

func (r *RequestRepository) collectRequests(ctx context.Context, b sq.SelectBuilder) ([]dto.MaintenanceRequestDTO, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []dto.MaintenanceRequestDTO
	for rows.Next() {
		item, err := scanRequestDTO(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *item)
	}
	return list, rows.Err()
}

func (r *RequestRepository) GetRequests(ctx context.Context, filter types.Filter) ([]dto.MaintenanceRequestDTO, uint64, error) {
	b := requestBaseQuery()
	countB := sq.Select("COUNT(*)").From("maintenance_requests r").PlaceholderFormat(sq.Dollar)

	for _, field := range []string{"status", "priority", "request_type", "team_id", "assigned_to_id"} {
		if v, ok := filter.Filter[field]; ok {
			b = b.Where(sq.Eq{"r." + field: v})
			countB = countB.Where(sq.Eq{"r." + field: v})
		}
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		b = b.Where(sq.ILike{"r.title": like})
		countB = countB.Where(sq.ILike{"r.title": like})
	}

	b = b.OrderBy("r.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	list, err := r.collectRequests(ctx, b)
	if err != nil {
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

// GetRequestsForBoard returns every request ordered for the kanban view:
// priority desc, then newest first. Bucketing happens in the service.
func (r *RequestRepository) GetRequestsForBoard(ctx context.Context) ([]dto.MaintenanceRequestDTO, error) {
	b := requestBaseQuery().OrderBy(
		`CASE r.priority
			WHEN 'Critical' THEN 4
			WHEN 'High' THEN 3
			WHEN 'Medium' THEN 2
			ELSE 1
		END DESC`,
		"r.created_at DESC",
	)
	return r.collectRequests(ctx, b)
}

func (r *RequestRepository) GetCalendarEvents(ctx context.Context, month, year int) ([]dto.CalendarEventDTO, error) {
	b := sq.Select(
		"r.id", "r.title", "r.scheduled_date",
		"COALESCE(e.name, '')", "COALESCE(t.name, '')",
		"r.status", "r.priority",
	).
		From("maintenance_requests r").
		LeftJoin("equipment e ON r.equipment_id = e.id").
		LeftJoin("teams t ON r.team_id = t.id").
		Where(sq.Eq{"r.request_type": "Preventive"}).
		OrderBy("r.scheduled_date").
		PlaceholderFormat(sq.Dollar)

	if month >= 1 && month <= 12 && year > 0 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		b = b.Where(sq.GtOrEq{"r.scheduled_date": start}).Where(sq.Lt{"r.scheduled_date": end})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []dto.CalendarEventDTO
	for rows.Next() {
		var ev dto.CalendarEventDTO
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Start, &ev.EquipmentName, &ev.TeamName, &ev.Status, &ev.Priority); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *RequestRepository) GetRequestsByEquipment(ctx context.Context, equipmentID uint64) ([]dto.MaintenanceRequestDTO, error) {
	b := requestBaseQuery().
		Where(sq.Eq{"r.equipment_id": equipmentID}).
		OrderBy("r.created_at DESC")
	return r.collectRequests(ctx, b)
}

func (r *RequestRepository) FindRequest(ctx context.Context, id uint64) (*dto.MaintenanceRequestDTO, error) {
	query, args, err := requestBaseQuery().Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanRequestDTO(r.storage.QueryRow(ctx, query, args...))
}

func (r *RequestRepository) FindEntity(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	var m entities.MaintenanceRequest
	err := r.storage.QueryRow(ctx, `
		SELECT id, title, description, request_type, priority, status,
		       equipment_id, team_id, assigned_to_id, sla_id,
		       scheduled_date, completed_date, estimated_cost, actual_cost,
		       created_by_id, updated_by_id, created_at, updated_at
		FROM maintenance_requests WHERE id = $1`, id).Scan(
		&m.ID, &m.Title, &m.Description, &m.RequestType, &m.Priority, &m.Status,
		&m.EquipmentID, &m.TeamID, &m.AssignedToID, &m.SLAID,
		&m.ScheduledDate, &m.CompletedDate, &m.EstimatedCost, &m.ActualCost,
		&m.CreatedByID, &m.UpdatedByID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *RequestRepository) CreateRequest(ctx context.Context, request *entities.MaintenanceRequest) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO maintenance_requests
			(title, description, request_type, priority, status, equipment_id,
			 team_id, assigned_to_id, sla_id, scheduled_date, estimated_cost,
			 actual_cost, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		request.Title, request.Description, request.RequestType, request.Priority,
		request.Status, request.EquipmentID, request.TeamID, request.AssignedToID,
		request.SLAID, request.ScheduledDate, request.EstimatedCost,
		request.ActualCost, request.CreatedByID,
	).Scan(&id)
	return id, err
}

func (r *RequestRepository) UpdateRequest(ctx context.Context, request *entities.MaintenanceRequest) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE maintenance_requests SET
			title = $1, description = $2, request_type = $3, priority = $4,
			status = $5, team_id = $6, assigned_to_id = $7, sla_id = $8,
			scheduled_date = $9, completed_date = $10, estimated_cost = $11,
			actual_cost = $12, updated_by_id = $13, updated_at = CURRENT_TIMESTAMP
		WHERE id = $14`,
		request.Title, request.Description, request.RequestType, request.Priority,
		request.Status, request.TeamID, request.AssignedToID, request.SLAID,
		request.ScheduledDate, request.CompletedDate, request.EstimatedCost,
		request.ActualCost, request.UpdatedByID, request.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) DeleteRequest(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM maintenance_requests WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
