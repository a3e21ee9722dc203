package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scribeapp/scribe/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, role_id, confirmed, avatar_hash, name, location, about, member_since, last_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash,
		user.RoleID, user.Confirmed, user.AvatarHash,
		user.Name, user.Location, user.About,
		user.MemberSince, user.LastSeen,
	)
	return mapConflict(err)
}

const userSelect = `
	SELECT u.id, u.email, u.username, u.password_hash, u.role_id, u.confirmed, u.avatar_hash,
		u.name, u.location, u.about, u.member_since, u.last_seen,
		r.id, r.name, r.is_default, r.permissions, r.created_at
	FROM users u
	JOIN roles r ON u.role_id = r.id`

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, userSelect+" WHERE u.id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, userSelect+" WHERE LOWER(u.email) = LOWER($1)", email)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, userSelect+" WHERE u.username = $1", username)
}

func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = $2, username = $3, password_hash = $4, role_id = $5, confirmed = $6,
			avatar_hash = $7, name = $8, location = $9, about = $10
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash,
		user.RoleID, user.Confirmed, user.AvatarHash,
		user.Name, user.Location, user.About,
	)
	return mapConflict(err)
}

func (r *UserRepo) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_seen = NOW() WHERE id = $1`, id)
	return err
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	var role domain.Role
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.RoleID, &u.Confirmed, &u.AvatarHash,
		&u.Name, &u.Location, &u.About, &u.MemberSince, &u.LastSeen,
		&role.ID, &role.Name, &role.Default, &role.Permissions, &role.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Role = &role
	return &u, nil
}
