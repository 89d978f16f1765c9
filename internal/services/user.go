package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"community-events-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// UserWriter extends UserStore with account mutations
type UserWriter interface {
	UserStore
	Create(ctx context.Context, user *models.User) error
	SetApproved(ctx context.Context, userID string, approved bool) error
}

// UserService handles password-based accounts
type UserService struct {
	users UserWriter
	auth  *AuthService
}

// NewUserService creates a new user service
func NewUserService(users UserWriter, auth *AuthService) *UserService {
	return &UserService{
		users: users,
		auth:  auth,
	}
}

// Register creates a new, unapproved account. Approval happens out of
// band before the account can sign in.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrBadRequest)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: account already exists", ErrBadRequest)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         "member",
		Approved:     false,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("email", email).Msg("User registered, pending approval")
	return user, nil
}

// Approve flips an account to approved so it can pass the gate
func (s *UserService) Approve(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrBadRequest)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: no account for %s", ErrNotFound, email)
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.users.SetApproved(ctx, user.ID, true); err != nil {
		return fmt.Errorf("failed to approve user: %w", err)
	}

	log.Info().Str("email", email).Msg("Account approved")
	return nil
}

// LoginAttempt checks email and password and mints a session token. The
// same gate rules apply as for identity-token sign-in: unknown accounts
// are not found, unapproved ones are forbidden.
func (s *UserService) LoginAttempt(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrBadRequest)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", fmt.Errorf("%w: no account for %s", ErrNotFound, email)
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: wrong password", ErrUnauthorized)
	}

	if !user.Approved {
		return nil, "", fmt.Errorf("%w: account not approved", ErrForbidden)
	}

	token, err := s.auth.mintSession(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
