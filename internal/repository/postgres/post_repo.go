package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scribeapp/scribe/internal/domain"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (id, body, body_html, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, post.ID, post.Body, post.BodyHTML, post.AuthorID, post.CreatedAt)
	return err
}

const postSelect = `
	SELECT p.id, p.body, p.body_html, p.author_id, p.created_at, u.username,
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
	FROM posts p
	JOIN users u ON p.author_id = u.id`

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var p domain.Post
	err := r.pool.QueryRow(ctx, postSelect+" WHERE p.id = $1", id).Scan(
		&p.ID, &p.Body, &p.BodyHTML, &p.AuthorID, &p.CreatedAt, &p.AuthorUsername, &p.CommentCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) Update(ctx context.Context, post *domain.Post) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE posts SET body = $2, body_html = $3 WHERE id = $1`,
		post.ID, post.Body, post.BodyHTML,
	)
	return err
}

func (r *PostRepo) List(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	return r.listPosts(ctx, postSelect+" ORDER BY p.created_at DESC LIMIT $1 OFFSET $2", limit, offset)
}

func (r *PostRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count)
	return count, err
}

func (r *PostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]domain.Post, error) {
	return r.listPosts(ctx, postSelect+" WHERE p.author_id = $3 ORDER BY p.created_at DESC LIMIT $1 OFFSET $2", limit, offset, authorID)
}

func (r *PostRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID).Scan(&count)
	return count, err
}

func (r *PostRepo) ListFollowed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Post, error) {
	query := postSelect + `
		JOIN follows f ON f.followed_id = p.author_id
		WHERE f.follower_id = $3
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`
	return r.listPosts(ctx, query, limit, offset, userID)
}

func (r *PostRepo) CountFollowed(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM posts p
		JOIN follows f ON f.followed_id = p.author_id
		WHERE f.follower_id = $1`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *PostRepo) listPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Body, &p.BodyHTML, &p.AuthorID, &p.CreatedAt, &p.AuthorUsername, &p.CommentCount); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
