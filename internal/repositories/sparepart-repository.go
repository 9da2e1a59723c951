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

const sparePartFields = `id, name, sku, category, quantity, minimum_stock, unit,
	unit_price, total_value, status, supplier, compatible_equipment,
	last_restocked, created_at, updated_at`

type SparePartRepositoryInterface interface {
	GetSpareParts(ctx context.Context, filter types.Filter) ([]entities.SparePart, uint64, error)
	GetLowStockParts(ctx context.Context) ([]entities.SparePart, error)
	FindSparePart(ctx context.Context, id uint64) (*entities.SparePart, error)
	CreateSparePart(ctx context.Context, part *entities.SparePart) (uint64, error)
	UpdateSparePart(ctx context.Context, part *entities.SparePart) error
	DeleteSparePart(ctx context.Context, id uint64) error
}

type SparePartRepository struct {
	storage *pgxpool.Pool
}

func NewSparePartRepository(storage *pgxpool.Pool) SparePartRepositoryInterface {
	return &SparePartRepository{storage: storage}
}

func scanSparePart(row pgx.Row) (*entities.SparePart, error) {
	var p entities.SparePart
	var compatible []int64
	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &p.Category, &p.Quantity, &p.MinimumStock, &p.Unit,
		&p.UnitPrice, &p.TotalValue, &p.Status, &p.Supplier, &compatible,
		&p.LastRestocked, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	p.CompatibleEquipment = make([]uint64, len(compatible))
	for i, id := range compatible {
		p.CompatibleEquipment[i] = uint64(id)
	}
	return &p, nil
}

func (r *SparePartRepository) collectParts(ctx context.Context, query string, args ...interface{}) ([]entities.SparePart, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []entities.SparePart
	for rows.Next() {
		p, err := scanSparePart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, *p)
	}
	return parts, rows.Err()
}

func (r *SparePartRepository) GetSpareParts(ctx context.Context, filter types.Filter) ([]entities.SparePart, uint64, error) {
	b := sq.Select(sparePartFields).From("spare_parts").PlaceholderFormat(sq.Dollar)
	countB := sq.Select("COUNT(*)").From("spare_parts").PlaceholderFormat(sq.Dollar)

	for _, field := range []string{"status", "category"} {
		if v, ok := filter.Filter[field]; ok {
			b = b.Where(sq.Eq{field: v})
			countB = countB.Where(sq.Eq{field: v})
		}
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := sq.Or{sq.ILike{"name": like}, sq.ILike{"sku": like}}
		b = b.Where(cond)
		countB = countB.Where(cond)
	}

	b = b.OrderBy("name").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	query, args, err := b.ToSql()
	if err != nil {
		return nil, 0, err
	}
	parts, err := r.collectParts(ctx, query, args...)
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

	return parts, total, nil
}

func (r *SparePartRepository) GetLowStockParts(ctx context.Context) ([]entities.SparePart, error) {
	return r.collectParts(ctx, `
		SELECT `+sparePartFields+`
		FROM spare_parts
		WHERE status IN ('Low Stock', 'Out of Stock')
		ORDER BY quantity`)
}

func (r *SparePartRepository) FindSparePart(ctx context.Context, id uint64) (*entities.SparePart, error) {
	return scanSparePart(r.storage.QueryRow(ctx,
		"SELECT "+sparePartFields+" FROM spare_parts WHERE id = $1", id))
}

func (r *SparePartRepository) CreateSparePart(ctx context.Context, part *entities.SparePart) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO spare_parts
			(name, sku, category, quantity, minimum_stock, unit, unit_price,
			 total_value, status, supplier, compatible_equipment, last_restocked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		part.Name, part.SKU, part.Category, part.Quantity, part.MinimumStock,
		part.Unit, part.UnitPrice, part.TotalValue, part.Status, part.Supplier,
		membersToInt64(part.CompatibleEquipment), part.LastRestocked,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.NewInvalidInputError("spare part with SKU %q already exists", part.SKU)
		}
		return 0, err
	}
	return id, nil
}

func (r *SparePartRepository) UpdateSparePart(ctx context.Context, part *entities.SparePart) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE spare_parts SET
			name = $1, sku = $2, category = $3, quantity = $4, minimum_stock = $5,
			unit = $6, unit_price = $7, total_value = $8, status = $9,
			supplier = $10, compatible_equipment = $11, last_restocked = $12,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $13`,
		part.Name, part.SKU, part.Category, part.Quantity, part.MinimumStock,
		part.Unit, part.UnitPrice, part.TotalValue, part.Status, part.Supplier,
		membersToInt64(part.CompatibleEquipment), part.LastRestocked, part.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewInvalidInputError("spare part with SKU %q already exists", part.SKU)
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *SparePartRepository) DeleteSparePart(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM spare_parts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
