package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scribeapp/scribe/internal/domain"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func (r *CommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, body, body_html, author_id, post_id, disabled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		comment.ID, comment.Body, comment.BodyHTML, comment.AuthorID,
		comment.PostID, comment.Disabled, comment.CreatedAt,
	)
	return err
}

const commentSelect = `
	SELECT c.id, c.body, c.body_html, c.author_id, c.post_id, c.disabled, c.created_at, u.username
	FROM comments c
	JOIN users u ON c.author_id = u.id`

func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var c domain.Comment
	err := r.pool.QueryRow(ctx, commentSelect+" WHERE c.id = $1", id).Scan(
		&c.ID, &c.Body, &c.BodyHTML, &c.AuthorID, &c.PostID, &c.Disabled, &c.CreatedAt, &c.AuthorUsername,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) SetDisabled(ctx context.Context, id uuid.UUID, disabled bool) error {
	_, err := r.pool.Exec(ctx, `UPDATE comments SET disabled = $2 WHERE id = $1`, id, disabled)
	return err
}

func (r *CommentRepo) ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]domain.Comment, error) {
	// Oldest first so threads read top-down.
	query := commentSelect + " WHERE c.post_id = $3 ORDER BY c.created_at ASC LIMIT $1 OFFSET $2"
	return r.listComments(ctx, query, limit, offset, postID)
}

func (r *CommentRepo) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&count)
	return count, err
}

func (r *CommentRepo) List(ctx context.Context, limit, offset int) ([]domain.Comment, error) {
	return r.listComments(ctx, commentSelect+" ORDER BY c.created_at DESC LIMIT $1 OFFSET $2", limit, offset)
}

func (r *CommentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments`).Scan(&count)
	return count, err
}

func (r *CommentRepo) listComments(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.Body, &c.BodyHTML, &c.AuthorID, &c.PostID, &c.Disabled, &c.CreatedAt, &c.AuthorUsername); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
