package fake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/scribeapp/scribe/internal/domain"
	"github.com/scribeapp/scribe/internal/markdown"
	"github.com/scribeapp/scribe/internal/repository"
	"github.com/scribeapp/scribe/internal/service"
)

// Users seeds count fake confirmed accounts on the default role, each
// with its self-follow edge. Generated emails and usernames that
// collide with existing rows are skipped, not retried forever.
func Users(ctx context.Context, userRepo repository.UserRepository, roleRepo repository.RoleRepository, followRepo repository.FollowRepository, count int) ([]uuid.UUID, error) {
	role, err := roleRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("no default role seeded")
	}

	// One shared hash: hashing per fake account would dominate the
	// seeding time and every account uses the same dev password.
	hash, err := service.HashPassword("password")
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for len(ids) < count {
		email := gofakeit.Email()
		memberSince := gofakeit.PastDate()
		user := &domain.User{
			ID:           uuid.New(),
			Email:        email,
			Username:     gofakeit.Username(),
			PasswordHash: hash,
			RoleID:       role.ID,
			Confirmed:    true,
			AvatarHash:   domain.GravatarHash(email),
			Name:         gofakeit.Name(),
			Location:     gofakeit.City(),
			About:        gofakeit.Sentence(12),
			MemberSince:  memberSince,
			LastSeen:     memberSince,
		}

		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			return ids, err
		}

		err := followRepo.Create(ctx, &domain.Follow{
			FollowerID: user.ID,
			FollowedID: user.ID,
			CreatedAt:  memberSince,
		})
		if err != nil && !errors.Is(err, domain.ErrConflict) {
			return ids, err
		}

		ids = append(ids, user.ID)
	}

	slog.Info("seeded fake users", "count", len(ids))
	return ids, nil
}

// Posts seeds count fake posts spread over the given authors.
func Posts(ctx context.Context, postRepo repository.PostRepository, authorIDs []uuid.UUID, count int) error {
	if len(authorIDs) == 0 {
		return fmt.Errorf("no authors to attribute posts to")
	}

	for i := 0; i < count; i++ {
		body := gofakeit.Paragraph(1, 3, 12, "\n\n")
		post := &domain.Post{
			ID:        uuid.New(),
			Body:      body,
			BodyHTML:  markdown.Sanitize(body, markdown.KindPost),
			AuthorID:  authorIDs[rand.IntN(len(authorIDs))],
			CreatedAt: gofakeit.PastDate(),
		}
		if err := postRepo.Create(ctx, post); err != nil {
			return err
		}
	}

	slog.Info("seeded fake posts", "count", count)
	return nil
}
