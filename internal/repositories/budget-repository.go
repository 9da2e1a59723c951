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

const budgetFields = `id, name, department, fiscal_year, period, allocated_amount,
	spent_amount, remaining_amount, status, alert_threshold, start_date,
	end_date, categories, created_by_id, created_at, updated_at`

type BudgetRepositoryInterface interface {
	GetBudgets(ctx context.Context, filter types.Filter) ([]entities.Budget, uint64, error)
	FindBudget(ctx context.Context, id uint64) (*entities.Budget, error)
	CreateBudget(ctx context.Context, budget *entities.Budget) (uint64, error)
	UpdateBudget(ctx context.Context, budget *entities.Budget) error
	DeleteBudget(ctx context.Context, id uint64) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type BudgetRepository struct {
	storage *pgxpool.Pool
}

func NewBudgetRepository(storage *pgxpool.Pool) BudgetRepositoryInterface {
	return &BudgetRepository{storage: storage}
}

func scanBudget(row pgx.Row) (*entities.Budget, error) {
	var b entities.Budget
	err := row.Scan(
		&b.ID, &b.Name, &b.Department, &b.FiscalYear, &b.Period, &b.AllocatedAmount,
		&b.SpentAmount, &b.RemainingAmount, &b.Status, &b.AlertThreshold, &b.StartDate,
		&b.EndDate, &b.Categories, &b.CreatedByID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) GetBudgets(ctx context.Context, filter types.Filter) ([]entities.Budget, uint64, error) {
	b := sq.Select(budgetFields).From("budgets").PlaceholderFormat(sq.Dollar)
	countB := sq.Select("COUNT(*)").From("budgets").PlaceholderFormat(sq.Dollar)

	for _, field := range []string{"status", "department", "fiscal_year", "period"} {
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

	b = b.OrderBy("fiscal_year DESC", "name").
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

	var budgets []entities.Budget
	for rows.Next() {
		item, err := scanBudget(rows)
		if err != nil {
			return nil, 0, err
		}
		budgets = append(budgets, *item)
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

	return budgets, total, nil
}

func (r *BudgetRepository) FindBudget(ctx context.Context, id uint64) (*entities.Budget, error) {
	return scanBudget(r.storage.QueryRow(ctx, "SELECT "+budgetFields+" FROM budgets WHERE id = $1", id))
}

func (r *BudgetRepository) CreateBudget(ctx context.Context, budget *entities.Budget) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO budgets
			(name, department, fiscal_year, period, allocated_amount, spent_amount,
			 remaining_amount, status, alert_threshold, start_date, end_date,
			 categories, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		budget.Name, budget.Department, budget.FiscalYear, budget.Period,
		budget.AllocatedAmount, budget.SpentAmount, budget.RemainingAmount,
		budget.Status, budget.AlertThreshold, budget.StartDate, budget.EndDate,
		budget.Categories, budget.CreatedByID,
	).Scan(&id)
	return id, err
}

func (r *BudgetRepository) UpdateBudget(ctx context.Context, budget *entities.Budget) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE budgets SET
			name = $1, department = $2, fiscal_year = $3, period = $4,
			allocated_amount = $5, spent_amount = $6, remaining_amount = $7,
			status = $8, alert_threshold = $9, start_date = $10, end_date = $11,
			categories = $12, updated_at = CURRENT_TIMESTAMP
		WHERE id = $13`,
		budget.Name, budget.Department, budget.FiscalYear, budget.Period,
		budget.AllocatedAmount, budget.SpentAmount, budget.RemainingAmount,
		budget.Status, budget.AlertThreshold, budget.StartDate, budget.EndDate,
		budget.Categories, budget.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BudgetRepository) DeleteBudget(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM budgets WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *BudgetRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM budgets WHERE status = $1", status).Scan(&count)
	return count, err
}
