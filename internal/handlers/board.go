package handlers

import (
	"context"
	"net/http"

	"community-events-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// BoardStore is the board profile surface the handler needs
type BoardStore interface {
	GetAll(ctx context.Context) ([]*models.BoardProfile, error)
}

// BoardHandler handles board profile HTTP requests
type BoardHandler struct {
	board BoardStore
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(board BoardStore) *BoardHandler {
	return &BoardHandler{board: board}
}

// Fetch handles GET /api/board/fetch
func (h *BoardHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.board.GetAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch board profiles")
		respondError(w, err)
		return
	}
	if profiles == nil {
		profiles = []*models.BoardProfile{}
	}
	respondData(w, profiles)
}
