package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lodge-registration/internal/domain"
)

// AdminRepository manages the admin allow-list.
type AdminRepository interface {
	Add(ctx context.Context, admin *domain.AdminUser) error
	IsAdmin(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) Add(ctx context.Context, admin *domain.AdminUser) error {
	const query = `
        INSERT INTO admin_users (email)
        VALUES ($1)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, admin.Email).Scan(&admin.ID, &admin.CreatedAt)
}

func (r *adminRepository) IsAdmin(ctx context.Context, email string) (bool, error) {
	const query = `SELECT email FROM admin_users WHERE email=$1`
	var found string
	err := r.pool.QueryRow(ctx, query, email).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *adminRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM admin_users`
	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
