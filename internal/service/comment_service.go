package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/scribeapp/scribe/internal/domain"
	"github.com/scribeapp/scribe/internal/markdown"
	"github.com/scribeapp/scribe/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Create adds a comment to a post. The comment sanitization policy is
// narrower than the post one: block-level markup is flattened to
// text. Requires the Comment permission.
func (s *CommentService) Create(ctx context.Context, actor *domain.User, postID uuid.UUID, input domain.ContentInput) (*domain.Comment, error) {
	if !actor.Can(domain.PermComment) {
		return nil, domain.ErrPermissionDenied
	}
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

	comment := &domain.Comment{
		ID:             uuid.New(),
		Body:           input.Body,
		BodyHTML:       markdown.Sanitize(input.Body, markdown.KindComment),
		AuthorID:       actor.ID,
		PostID:         postID,
		CreatedAt:      time.Now(),
		AuthorUsername: actor.Username,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.ErrNotFound
	}
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]domain.Comment, int, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, total, nil
}

// ListAll returns every comment newest first, for the moderation
// queue. Requires the Moderate permission.
func (s *CommentService) ListAll(ctx context.Context, actor *domain.User, limit, offset int) ([]domain.Comment, int, error) {
	if !actor.Can(domain.PermModerate) {
		return nil, 0, domain.ErrPermissionDenied
	}
	comments, err := s.commentRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.commentRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, total, nil
}

// SetDisabled flips a comment's moderation flag. Requires the Moderate
// permission.
func (s *CommentService) SetDisabled(ctx context.Context, actor *domain.User, commentID uuid.UUID, disabled bool) error {
	if !actor.Can(domain.PermModerate) {
		return domain.ErrPermissionDenied
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return domain.ErrNotFound
	}

	return s.commentRepo.SetDisabled(ctx, commentID, disabled)
}
