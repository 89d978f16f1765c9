package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"community-events-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// AuthService is the gate surface the handler needs
type AuthService interface {
	Authenticate(ctx context.Context, identityToken string) (*models.User, string, error)
}

// AuthHandler handles identity-token sign-in
type AuthHandler struct {
	auth AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// GoogleAuthRequest is the body of POST /api/google/auth
type GoogleAuthRequest struct {
	Token string `json:"token"`
}

// GoogleAuth handles POST /api/google/auth
func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}
	if req.Token == "" {
		respondBadRequest(w, "token is required")
		return
	}

	user, sessionToken, err := h.auth.Authenticate(r.Context(), req.Token)
	if err != nil {
		log.Warn().Err(err).Msg("Sign-in rejected")
		respondError(w, err)
		return
	}

	log.Info().Str("email", user.Email).Str("role", user.Role).Msg("User signed in")
	respond(w, http.StatusOK, map[string]interface{}{
		"userToken": sessionToken,
		"account":   user,
	})
}
