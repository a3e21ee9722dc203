package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scribeapp/scribe/internal/domain"
	"github.com/scribeapp/scribe/internal/repository"
)

// selfFollowBatch bounds each backfill round so the repair never holds
// a large result set.
const selfFollowBatch = 500

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		postRepo:   postRepo,
	}
}

// Follow creates the actor→target edge. Following someone already
// followed is a no-op, as is losing the insert race to a concurrent
// call. Requires the Follow permission.
func (s *FollowService) Follow(ctx context.Context, actor *domain.User, targetID uuid.UUID) error {
	if !actor.Can(domain.PermFollow) {
		return domain.ErrPermissionDenied
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}

	err = s.followRepo.Create(ctx, &domain.Follow{
		FollowerID: actor.ID,
		FollowedID: targetID,
		CreatedAt:  time.Now(),
	})
	if errors.Is(err, domain.ErrConflict) {
		return nil
	}
	return err
}

// Unfollow removes the actor→target edge if present. Removing the
// self-edge is forbidden: it would drop the actor's own posts from
// their feed.
func (s *FollowService) Unfollow(ctx context.Context, actor *domain.User, targetID uuid.UUID) error {
	if actor.ID == targetID {
		return domain.ErrSelfUnfollow
	}
	return s.followRepo.Delete(ctx, actor.ID, targetID)
}

// IsFollowing reports whether a follows b. An account without a
// persisted identity follows nothing.
func (s *FollowService) IsFollowing(ctx context.Context, a, b uuid.UUID) (bool, error) {
	if a == uuid.Nil || b == uuid.Nil {
		return false, nil
	}
	return s.followRepo.Exists(ctx, a, b)
}

func (s *FollowService) IsFollowedBy(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.IsFollowing(ctx, b, a)
}

func (s *FollowService) Followers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Follow, int, error) {
	follows, err := s.followRepo.ListFollowers(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if follows == nil {
		follows = []domain.Follow{}
	}
	return follows, total, nil
}

func (s *FollowService) Following(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Follow, int, error) {
	follows, err := s.followRepo.ListFollowing(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if follows == nil {
		follows = []domain.Follow{}
	}
	return follows, total, nil
}

// FollowedPosts is the feed: posts authored by anyone userID follows,
// self included via the self-edge, newest first. Each call recomputes
// from current state; nothing is materialized.
func (s *FollowService) FollowedPosts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Post, int, error) {
	posts, err := s.postRepo.ListFollowed(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.CountFollowed(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, total, nil
}

// EnsureSelfFollows backfills missing self-edges in batches. Each
// batch commits independently, so a crash part-way leaves the repair
// resumable. Returns how many edges were created.
func (s *FollowService) EnsureSelfFollows(ctx context.Context) (int, error) {
	created := 0
	for {
		ids, err := s.followRepo.ListMissingSelfFollows(ctx, selfFollowBatch)
		if err != nil {
			return created, fmt.Errorf("listing accounts without self-follow: %w", err)
		}
		if len(ids) == 0 {
			return created, nil
		}

		for _, id := range ids {
			err := s.followRepo.Create(ctx, &domain.Follow{
				FollowerID: id,
				FollowedID: id,
				CreatedAt:  time.Now(),
			})
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			if err != nil {
				return created, fmt.Errorf("creating self-follow for %s: %w", id, err)
			}
			created++
		}
	}
}
