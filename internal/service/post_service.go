package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/scribeapp/scribe/internal/domain"
	"github.com/scribeapp/scribe/internal/markdown"
	"github.com/scribeapp/scribe/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// Create publishes a post by the actor. BodyHTML is derived from the
// body here, the only place a post body is first set. Requires the
// Write permission.
func (s *PostService) Create(ctx context.Context, actor *domain.User, input domain.ContentInput) (*domain.Post, error) {
	if !actor.Can(domain.PermWrite) {
		return nil, domain.ErrPermissionDenied
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	post := &domain.Post{
		ID:             uuid.New(),
		Body:           input.Body,
		BodyHTML:       markdown.Sanitize(input.Body, markdown.KindPost),
		AuthorID:       actor.ID,
		CreatedAt:      time.Now(),
		AuthorUsername: actor.Username,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Edit replaces a post's body. Only the author or an administrator may
// edit; the HTML rendering is recomputed with the body so the two
// never diverge.
func (s *PostService) Edit(ctx context.Context, actor *domain.User, postID uuid.UUID, input domain.ContentInput) (*domain.Post, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrNotFound
	}
	if post.AuthorID != actor.ID && !actor.Can(domain.PermAdmin) {
		return nil, domain.ErrPermissionDenied
	}

	post.Body = input.Body
	post.BodyHTML = markdown.Sanitize(input.Body, markdown.KindPost)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, postID uuid.UUID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.ErrNotFound
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context, limit, offset int) ([]domain.Post, int, error) {
	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, total, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]domain.Post, int, error) {
	posts, err := s.postRepo.ListByAuthor(ctx, authorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, 0, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, total, nil
}

func (s *PostService) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return s.postRepo.CountByAuthor(ctx, authorID)
}
