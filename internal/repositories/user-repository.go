package repositories

import (
	"context"
	"errors"

	"gearguard/internal/entities"
	"gearguard/pkg/apperrors"
	"gearguard/pkg/constants"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userFields = "id, full_name, email, phone_number, password, role, department, is_active, created_at, updated_at"

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]entities.User, error)
	FindActiveManagers(ctx context.Context, department string) ([]entities.User, error)
	GetUsers(ctx context.Context) ([]entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.Password,
		&u.Role, &u.Department, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	return scanUser(r.storage.QueryRow(ctx, "SELECT "+userFields+" FROM users WHERE id = $1", id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return scanUser(r.storage.QueryRow(ctx, "SELECT "+userFields+" FROM users WHERE email = $1", email))
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]entities.User, error) {
	if len(ids) == 0 {
		return map[uint64]entities.User{}, nil
	}
	int64IDs := make([]int64, len(ids))
	for i, id := range ids {
		int64IDs[i] = int64(id)
	}

	rows, err := r.storage.Query(ctx, "SELECT "+userFields+" FROM users WHERE id = ANY($1)", int64IDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make(map[uint64]entities.User)
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(
			&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.Password,
			&u.Role, &u.Department, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users[u.ID] = u
	}
	return users, rows.Err()
}

// FindActiveManagers returns every active user with the Manager role,
// optionally narrowed to one department.
func (r *UserRepository) FindActiveManagers(ctx context.Context, department string) ([]entities.User, error) {
	query := "SELECT " + userFields + " FROM users WHERE role = $1 AND is_active = true"
	args := []interface{}{constants.RoleManager}
	if department != "" {
		query += " AND department = $2"
		args = append(args, department)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var managers []entities.User
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(
			&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.Password,
			&u.Role, &u.Department, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		managers = append(managers, u)
	}
	return managers, rows.Err()
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]entities.User, error) {
	rows, err := r.storage.Query(ctx, "SELECT "+userFields+" FROM users ORDER BY full_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entities.User
	for rows.Next() {
		var u entities.User
		if err := rows.Scan(
			&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.Password,
			&u.Role, &u.Department, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
