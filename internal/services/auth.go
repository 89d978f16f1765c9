package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"community-events-backend/internal/models"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// UserStore is the slice of the user repository the service needs
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenVerifier verifies a third-party identity token and returns the
// verified email address.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (string, error)
}

// GoogleVerifier verifies Google-issued ID tokens against a client ID
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewGoogleVerifier builds a verifier for the given issuer and audience
func NewGoogleVerifier(ctx context.Context, issuerURL, clientID string) (*GoogleVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}
	return &GoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// Verify checks signature and audience and extracts the email claim
func (g *GoogleVerifier) Verify(ctx context.Context, rawToken string) (string, error) {
	idToken, err := g.verifier.Verify(ctx, rawToken)
	if err != nil {
		return "", fmt.Errorf("failed to verify identity token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", fmt.Errorf("failed to parse identity claims: %w", err)
	}
	if claims.Email == "" {
		return "", fmt.Errorf("identity token carries no email")
	}
	return claims.Email, nil
}

// SessionClaims is what an application session token carries
type SessionClaims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Approved bool   `json:"approved"`
}

// AuthService verifies identity tokens and mints application sessions
type AuthService struct {
	verifier   TokenVerifier
	users      UserStore
	jwtSecret  string
	sessionTTL time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(verifier TokenVerifier, users UserStore, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		verifier:   verifier,
		users:      users,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

// Authenticate runs the full gate: verify the identity token, look up the
// local user, check approval, mint a session token. An unknown user is
// distinct from an unapproved one.
func (s *AuthService) Authenticate(ctx context.Context, identityToken string) (*models.User, string, error) {
	email, err := s.verifier.Verify(ctx, identityToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrUnauthorized, err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", fmt.Errorf("%w: no account for %s", ErrNotFound, email)
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.Approved {
		log.Warn().Str("email", email).Msg("Unapproved account rejected")
		return nil, "", fmt.Errorf("%w: account not approved", ErrForbidden)
	}

	token, err := s.mintSession(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) mintSession(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email":    user.Email,
		"role":     user.Role,
		"approved": user.Approved,
		"exp":      now.Add(s.sessionTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateSession validates a session token and returns its claims
func (s *AuthService) ValidateSession(tokenString string) (SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return SessionClaims{}, fmt.Errorf("%w: %s", ErrUnauthorized, err)
	}
	if !token.Valid {
		return SessionClaims{}, fmt.Errorf("%w: invalid session token", ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, fmt.Errorf("%w: invalid session claims", ErrUnauthorized)
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	approved, _ := claims["approved"].(bool)
	if email == "" {
		return SessionClaims{}, fmt.Errorf("%w: session carries no email", ErrUnauthorized)
	}

	return SessionClaims{Email: email, Role: role, Approved: approved}, nil
}
