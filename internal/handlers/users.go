package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"community-events-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// UserService is the account surface the handler needs
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	LoginAttempt(ctx context.Context, email, password string) (*models.User, string, error)
	Approve(ctx context.Context, email string) error
}

// UserHandler handles password-account HTTP requests
type UserHandler struct {
	users UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Credentials is the nested user payload of the account routes
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRequest wraps credentials the way the clients send them
type UserRequest struct {
	User Credentials `json:"user"`
}

// LoginAttempt handles POST /api/users/user/login/attempt
func (h *UserHandler) LoginAttempt(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	user, sessionToken, err := h.users.LoginAttempt(r.Context(), req.User.Email, req.User.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", req.User.Email).Msg("Login attempt rejected")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"account":   user,
		"userToken": sessionToken,
	})
}

// Register handles POST /api/users/user/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), req.User.Email, req.User.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	log.Info().Str("email", user.Email).Msg("Account registered")
	respond(w, http.StatusOK, map[string]interface{}{
		"message": "account created, pending approval",
		"account": user,
	})
}

// Approve handles POST /api/users/user/approve
func (h *UserHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}

	if err := h.users.Approve(r.Context(), req.User.Email); err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{"message": "account approved"})
}
