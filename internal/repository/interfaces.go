package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/scribeapp/scribe/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateLastSeen(ctx context.Context, id uuid.UUID) error
}

type RoleRepository interface {
	// Upsert inserts or fully overwrites the role matched by name,
	// including its permission mask and default flag.
	Upsert(ctx context.Context, role *domain.Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	GetDefault(ctx context.Context) (*domain.Role, error)
}

type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow) error
	// Delete removes the (follower, followed) edge. Self-edges are
	// never deleted here; the feed invariant depends on them.
	Delete(ctx context.Context, followerID, followedID uuid.UUID) error
	Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	ListFollowers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Follow, error)
	ListFollowing(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Follow, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int, error)
	// ListMissingSelfFollows returns up to limit user IDs that lack a
	// self-edge, for batched backfill.
	ListMissingSelfFollows(ctx context.Context, limit int) ([]uuid.UUID, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	List(ctx context.Context, limit, offset int) ([]domain.Post, error)
	Count(ctx context.Context) (int, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]domain.Post, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
	// ListFollowed joins posts against the follow-edge set: posts
	// authored by anyone userID follows, newest first. Recomputed
	// from current state on every call.
	ListFollowed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Post, error)
	CountFollowed(ctx context.Context, userID uuid.UUID) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	SetDisabled(ctx context.Context, id uuid.UUID, disabled bool) error
	ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]domain.Comment, error)
	CountByPost(ctx context.Context, postID uuid.UUID) (int, error)
	// List returns all comments newest first, for moderation.
	List(ctx context.Context, limit, offset int) ([]domain.Comment, error)
	Count(ctx context.Context) (int, error)
}
