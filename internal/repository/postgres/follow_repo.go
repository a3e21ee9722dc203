package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scribeapp/scribe/internal/domain"
)

type FollowRepo struct {
	pool *pgxpool.Pool
}

func NewFollowRepo(pool *pgxpool.Pool) *FollowRepo {
	return &FollowRepo{pool: pool}
}

func (r *FollowRepo) Create(ctx context.Context, follow *domain.Follow) error {
	query := `
		INSERT INTO follows (follower_id, followed_id, created_at)
		VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, query, follow.FollowerID, follow.FollowedID, follow.CreatedAt)
	return mapConflict(err)
}

func (r *FollowRepo) Delete(ctx context.Context, followerID, followedID uuid.UUID) error {
	// The guard keeps self-edges intact no matter who calls.
	_, err := r.pool.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2 AND follower_id <> followed_id`,
		followerID, followedID,
	)
	return err
}

func (r *FollowRepo) Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`,
		followerID, followedID,
	).Scan(&exists)
	return exists, err
}

func (r *FollowRepo) ListFollowers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Follow, error) {
	query := `
		SELECT f.follower_id, f.followed_id, f.created_at, u.username, u.avatar_hash
		FROM follows f
		JOIN users u ON f.follower_id = u.id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`
	return r.listFollows(ctx, query, userID, limit, offset)
}

func (r *FollowRepo) ListFollowing(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Follow, error) {
	query := `
		SELECT f.follower_id, f.followed_id, f.created_at, u.username, u.avatar_hash
		FROM follows f
		JOIN users u ON f.followed_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3`
	return r.listFollows(ctx, query, userID, limit, offset)
}

func (r *FollowRepo) listFollows(ctx context.Context, query string, userID uuid.UUID, limit, offset int) ([]domain.Follow, error) {
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var follows []domain.Follow
	for rows.Next() {
		var f domain.Follow
		if err := rows.Scan(&f.FollowerID, &f.FollowedID, &f.CreatedAt, &f.Username, &f.AvatarHash); err != nil {
			return nil, err
		}
		follows = append(follows, f)
	}
	return follows, rows.Err()
}

func (r *FollowRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM follows WHERE followed_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *FollowRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *FollowRepo) ListMissingSelfFollows(ctx context.Context, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT u.id FROM users u
		WHERE NOT EXISTS (
			SELECT 1 FROM follows f WHERE f.follower_id = u.id AND f.followed_id = u.id
		)
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
