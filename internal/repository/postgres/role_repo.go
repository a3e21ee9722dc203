package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scribeapp/scribe/internal/domain"
)

type RoleRepo struct {
	pool *pgxpool.Pool
}

func NewRoleRepo(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

func (r *RoleRepo) Upsert(ctx context.Context, role *domain.Role) error {
	query := `
		INSERT INTO roles (id, name, is_default, permissions, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE
		SET is_default = EXCLUDED.is_default, permissions = EXCLUDED.permissions`

	_, err := r.pool.Exec(ctx, query,
		role.ID, role.Name, role.Default, role.Permissions, role.CreatedAt,
	)
	return err
}

func (r *RoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	return r.scanRole(ctx, `SELECT id, name, is_default, permissions, created_at FROM roles WHERE id = $1`, id)
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.scanRole(ctx, `SELECT id, name, is_default, permissions, created_at FROM roles WHERE name = $1`, name)
}

func (r *RoleRepo) GetDefault(ctx context.Context) (*domain.Role, error) {
	return r.scanRole(ctx, `SELECT id, name, is_default, permissions, created_at FROM roles WHERE is_default`, nil)
}

func (r *RoleRepo) scanRole(ctx context.Context, query string, arg any) (*domain.Role, error) {
	var role domain.Role
	var row pgx.Row
	if arg == nil {
		row = r.pool.QueryRow(ctx, query)
	} else {
		row = r.pool.QueryRow(ctx, query, arg)
	}
	err := row.Scan(&role.ID, &role.Name, &role.Default, &role.Permissions, &role.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}
