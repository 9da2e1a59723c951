package repositories

import (
	"context"

	"gearguard/internal/dto"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepositoryInterface interface {
	CountEquipmentBy(ctx context.Context, column string) ([]dto.CountByGroupDTO, error)
	CountRequestsBy(ctx context.Context, column string) ([]dto.CountByGroupDTO, error)
	CountOpenRequests(ctx context.Context) (int64, error)
	CountCriticalOpenRequests(ctx context.Context) (int64, error)
	CountLowStockParts(ctx context.Context) (int64, error)
	GetRequestTrend(ctx context.Context, months int) ([]dto.RequestTrendPointDTO, error)
	GetCostSummary(ctx context.Context) (*dto.CostSummaryDTO, error)
	GetSLACompliance(ctx context.Context) (*dto.SLAComplianceDTO, error)
	GetTeamPerformance(ctx context.Context) ([]dto.TeamPerformanceDTO, error)
	GetReportRows(ctx context.Context, from, to string) ([]dto.ReportRowDTO, error)
}

type StatsRepository struct {
	storage *pgxpool.Pool
}

func NewStatsRepository(storage *pgxpool.Pool) StatsRepositoryInterface {
	return &StatsRepository{storage: storage}
}

// countBy columns are picked from a fixed set by the service; the column name
// never comes from request input.
func (r *StatsRepository) countBy(ctx context.Context, table, column string) ([]dto.CountByGroupDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT `+column+` AS group_name, COUNT(*) AS count
		FROM `+table+`
		GROUP BY `+column+`
		ORDER BY count DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[dto.CountByGroupDTO])
}

func (r *StatsRepository) CountEquipmentBy(ctx context.Context, column string) ([]dto.CountByGroupDTO, error) {
	return r.countBy(ctx, "equipment", column)
}

func (r *StatsRepository) CountRequestsBy(ctx context.Context, column string) ([]dto.CountByGroupDTO, error) {
	return r.countBy(ctx, "maintenance_requests", column)
}

func (r *StatsRepository) CountOpenRequests(ctx context.Context) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM maintenance_requests WHERE status IN ('New', 'In Progress')").Scan(&count)
	return count, err
}

func (r *StatsRepository) CountCriticalOpenRequests(ctx context.Context) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx, `
		SELECT COUNT(*) FROM maintenance_requests
		WHERE priority = 'Critical' AND status IN ('New', 'In Progress')`).Scan(&count)
	return count, err
}

func (r *StatsRepository) CountLowStockParts(ctx context.Context) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM spare_parts WHERE status IN ('Low Stock', 'Out of Stock')").Scan(&count)
	return count, err
}

func (r *StatsRepository) GetRequestTrend(ctx context.Context, months int) ([]dto.RequestTrendPointDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
		       status, priority, COUNT(*) AS count
		FROM maintenance_requests
		WHERE created_at >= date_trunc('month', CURRENT_TIMESTAMP) - make_interval(months => $1)
		GROUP BY month, status, priority
		ORDER BY month`, months)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[dto.RequestTrendPointDTO])
}

// GetCostSummary aggregates over a rolling 30 day window.
func (r *StatsRepository) GetCostSummary(ctx context.Context) (*dto.CostSummaryDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT COALESCE(SUM(estimated_cost), 0)::float8 AS total_estimated,
		       COALESCE(SUM(actual_cost), 0)::float8 AS total_actual,
		       COALESCE(AVG(estimated_cost), 0)::float8 AS average_estimated,
		       COALESCE(AVG(actual_cost), 0)::float8 AS average_actual,
		       COUNT(*) AS request_count
		FROM maintenance_requests
		WHERE created_at >= CURRENT_TIMESTAMP - INTERVAL '30 days'`)
	if err != nil {
		return nil, err
	}
	summary, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[dto.CostSummaryDTO])
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetSLACompliance compares resolution time against the attached policy's
// resolution window for every completed request that carried an SLA.
func (r *StatsRepository) GetSLACompliance(ctx context.Context) (*dto.SLAComplianceDTO, error) {
	var c dto.SLAComplianceDTO
	err := r.storage.QueryRow(ctx, `
		SELECT COUNT(*) AS total_with_sla,
		       COUNT(*) FILTER (
		           WHERE EXTRACT(EPOCH FROM (r.completed_date - r.created_at)) / 60 <=
		               (s.resolution_time->>'value')::int * CASE s.resolution_time->>'unit'
		                   WHEN 'hours' THEN 60
		                   WHEN 'days' THEN 1440
		                   ELSE 1
		               END
		       ) AS on_time
		FROM maintenance_requests r
		JOIN slas s ON r.sla_id = s.id
		WHERE r.completed_date IS NOT NULL`).Scan(&c.TotalWithSLA, &c.OnTime)
	if err != nil {
		return nil, err
	}
	if c.TotalWithSLA > 0 {
		c.ComplianceRate = float64(c.OnTime) / float64(c.TotalWithSLA) * 100
	}
	return &c, nil
}

func (r *StatsRepository) GetTeamPerformance(ctx context.Context) ([]dto.TeamPerformanceDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT t.id AS team_id, t.name AS team_name,
		       COUNT(r.id) AS completed_count,
		       COALESCE(AVG(EXTRACT(EPOCH FROM (r.completed_date - r.created_at)) / 86400), 0)::float8 AS avg_resolution_days
		FROM teams t
		LEFT JOIN maintenance_requests r
		    ON r.team_id = t.id AND r.completed_date IS NOT NULL
		GROUP BY t.id, t.name
		ORDER BY completed_count DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[dto.TeamPerformanceDTO])
}

func (r *StatsRepository) GetReportRows(ctx context.Context, from, to string) ([]dto.ReportRowDTO, error) {
	query := `
		SELECT r.id AS request_id, r.title, r.request_type, r.priority, r.status,
		       COALESCE(e.name, '') AS equipment_name,
		       COALESCE(t.name, '') AS team_name,
		       to_char(r.created_at, 'YYYY-MM-DD') AS created_at,
		       COALESCE(to_char(r.completed_date, 'YYYY-MM-DD'), '') AS completed_at,
		       COALESCE(r.actual_cost, 0)::float8 AS actual_cost
		FROM maintenance_requests r
		LEFT JOIN equipment e ON r.equipment_id = e.id
		LEFT JOIN teams t ON r.team_id = t.id`

	var args []interface{}
	if from != "" && to != "" {
		query += " WHERE r.created_at >= $1::date AND r.created_at < $2::date + 1"
		args = append(args, from, to)
	}
	query += " ORDER BY r.created_at"

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[dto.ReportRowDTO])
}
