package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scribeapp/scribe/internal/domain"
	"github.com/scribeapp/scribe/internal/notify"
	"github.com/scribeapp/scribe/internal/repository"
	"github.com/scribeapp/scribe/internal/token"
)

var (
	ErrEmailTaken    = errors.New("email already taken")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidCreds  = errors.New("invalid email or password")
)

// apiTokenTTL is the lifetime of bearer tokens handed out at login.
const apiTokenTTL = 24 * time.Hour

type AuthService struct {
	userRepo   repository.UserRepository
	roleRepo   repository.RoleRepository
	followRepo repository.FollowRepository
	tokens     *token.Authenticator
	publisher  notify.Publisher
	adminEmail string
}

func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	followRepo repository.FollowRepository,
	tokens *token.Authenticator,
	publisher notify.Publisher,
	adminEmail string,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		followRepo: followRepo,
		tokens:     tokens,
		publisher:  publisher,
		adminEmail: adminEmail,
	}
}

type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// Register creates an account. The role comes from the admin-email
// match or falls back to the default role; the self-follow edge is
// created immediately so the user's own posts appear in their feed;
// an account-created event carrying the confirmation token goes to the
// notification collaborator.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	role, err := s.roleForEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		RoleID:       role.ID,
		AvatarHash:   domain.GravatarHash(input.Email),
		MemberSince:  now,
		LastSeen:     now,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost a race on email/username uniqueness.
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if err := s.selfFollow(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("creating self-follow: %w", err)
	}

	s.emit(ctx, notify.Event{
		UserID:    user.ID,
		Kind:      notify.EventAccountCreated,
		Email:     user.Email,
		Token:     s.mustIssue(token.PurposeConfirm, user.ID, nil),
		CreatedAt: now,
	})

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCreds
	}

	if !VerifyPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	access, err := s.tokens.Issue(token.PurposeAPIAuth, user.ID, nil, apiTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issuing access token: %w", err)
	}

	return &AuthResponse{User: user, AccessToken: access}, nil
}

// IssueConfirmation re-issues a confirmation token for an account that
// missed or expired its original one.
func (s *AuthService) IssueConfirmation(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrNotFound
	}

	tok, err := s.tokens.Issue(token.PurposeConfirm, user.ID, nil, token.DefaultTTL)
	if err != nil {
		return "", err
	}

	s.emit(ctx, notify.Event{
		UserID:    user.ID,
		Kind:      notify.EventAccountCreated,
		Email:     user.Email,
		Token:     tok,
		CreatedAt: time.Now(),
	})
	return tok, nil
}

// Confirm marks the acting account confirmed if the token was issued
// for it. Already-confirmed accounts succeed as a no-op.
func (s *AuthService) Confirm(ctx context.Context, userID uuid.UUID, tokenStr string) error {
	claims, err := s.tokens.Verify(tokenStr, token.PurposeConfirm)
	if err != nil {
		return token.ErrInvalid
	}
	if claims.UserID != userID {
		return token.ErrInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.Confirmed {
		return nil
	}

	user.Confirmed = true
	return s.userRepo.Update(ctx, user)
}

// RequestPasswordReset issues a reset token for the account with the
// given email and hands it to the notification collaborator. Unknown
// emails are reported so the handler can decide what to disclose.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	tok, err := s.tokens.Issue(token.PurposeReset, user.ID, nil, token.DefaultTTL)
	if err != nil {
		return err
	}

	s.emit(ctx, notify.Event{
		UserID:    user.ID,
		Kind:      notify.EventPasswordReset,
		Email:     user.Email,
		Token:     tok,
		CreatedAt: time.Now(),
	})
	return nil
}

// ResetPassword sets a new password for the account named by a valid
// reset token.
func (s *AuthService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	claims, err := s.tokens.Verify(tokenStr, token.PurposeReset)
	if err != nil {
		return token.ErrInvalid
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return token.ErrInvalid
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.PasswordHash = hash
	return s.userRepo.Update(ctx, user)
}

// RequestEmailChange verifies the caller's password, checks the new
// address is free, and issues a change token that embeds the new email
// so the change commits only from the token.
func (s *AuthService) RequestEmailChange(ctx context.Context, userID uuid.UUID, newEmail, password string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return ErrInvalidCreds
	}

	taken, err := s.userRepo.GetByEmail(ctx, newEmail)
	if err != nil {
		return err
	}
	if taken != nil {
		return ErrEmailTaken
	}

	tok, err := s.tokens.Issue(token.PurposeChangeEmail, user.ID,
		map[string]string{"new_email": newEmail}, token.DefaultTTL)
	if err != nil {
		return err
	}

	s.emit(ctx, notify.Event{
		UserID:    user.ID,
		Kind:      notify.EventEmailChange,
		Email:     newEmail,
		Token:     tok,
		CreatedAt: time.Now(),
	})
	return nil
}

// ChangeEmail commits an email change from a valid token issued to the
// acting account. The avatar fingerprint is recomputed from the new
// address.
func (s *AuthService) ChangeEmail(ctx context.Context, userID uuid.UUID, tokenStr string) error {
	claims, err := s.tokens.Verify(tokenStr, token.PurposeChangeEmail)
	if err != nil {
		return token.ErrInvalid
	}
	if claims.UserID != userID {
		return token.ErrInvalid
	}

	newEmail := claims.Extra["new_email"]
	if newEmail == "" {
		return token.ErrInvalid
	}

	taken, err := s.userRepo.GetByEmail(ctx, newEmail)
	if err != nil {
		return err
	}
	if taken != nil {
		return ErrEmailTaken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	user.Email = newEmail
	user.AvatarHash = domain.GravatarHash(newEmail)
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// UpdateProfile sets the editable profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, location, about string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	user.Name = name
	user.Location = location
	user.About = about
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Ping records authenticated activity by bumping last_seen.
func (s *AuthService) Ping(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.UpdateLastSeen(ctx, userID)
}

func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *AuthService) roleForEmail(ctx context.Context, email string) (*domain.Role, error) {
	if s.adminEmail != "" && strings.EqualFold(email, s.adminEmail) {
		role, err := s.roleRepo.GetByName(ctx, domain.RoleNameAdministrator)
		if err != nil {
			return nil, err
		}
		if role != nil {
			return role, nil
		}
	}

	role, err := s.roleRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("no default role seeded")
	}
	return role, nil
}

func (s *AuthService) selfFollow(ctx context.Context, userID uuid.UUID, now time.Time) error {
	err := s.followRepo.Create(ctx, &domain.Follow{
		FollowerID: userID,
		FollowedID: userID,
		CreatedAt:  now,
	})
	if errors.Is(err, domain.ErrConflict) {
		return nil
	}
	return err
}

// emit publishes a notification event; failure is logged and never
// fails the surrounding operation.
func (s *AuthService) emit(ctx context.Context, event notify.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Error("publishing notification event", "kind", event.Kind, "error", err)
	}
}

// mustIssue issues a default-TTL token, returning an empty string on
// the (practically impossible) signing failure so registration never
// aborts over a notification payload.
func (s *AuthService) mustIssue(purpose token.Purpose, userID uuid.UUID, extra map[string]string) string {
	tok, err := s.tokens.Issue(purpose, userID, extra, token.DefaultTTL)
	if err != nil {
		slog.Error("issuing token", "purpose", purpose, "error", err)
		return ""
	}
	return tok
}
