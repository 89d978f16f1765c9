package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"community-events-backend/internal/services"

	"github.com/rs/zerolog/log"
)

const maxUploadBytes = 32 << 20

// MediaService is the ingestion surface the handler needs
type MediaService interface {
	Register(ctx context.Context, parentID, category string, up services.Upload) (string, error)
	Delete(ctx context.Context, mediaURL, mediaType string) ([]string, error)
}

// MediaHandler handles media-related HTTP requests
type MediaHandler struct {
	media MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(media MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// UploadFile handles POST /api/media/upload/file (multipart)
func (h *MediaHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondBadRequest(w, "Invalid multipart body")
		return
	}

	parentID := r.FormValue("id")
	if parentID == "" {
		respondBadRequest(w, "id is required")
		return
	}
	uploadType := r.FormValue("upload_type")

	file, header, err := r.FormFile("media")
	if err != nil {
		respondBadRequest(w, "media file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respondBadRequest(w, "failed to read media file")
		return
	}

	up := services.Upload{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}

	url, err := h.media.Register(r.Context(), parentID, uploadType, up)
	if err != nil {
		log.Error().
			Err(err).
			Str("parent_id", parentID).
			Str("upload_type", uploadType).
			Msg("Failed to upload media file")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{"url": url})
}

// RegisterMediaRequest is the body of POST /api/media/registerMedia
type RegisterMediaRequest struct {
	Media struct {
		File     string `json:"file"`
		Filename string `json:"filename"`
	} `json:"media"`
	ForeignKey string `json:"foreignKey"`
	Type       string `json:"type"`
}

// RegisterMedia handles POST /api/media/registerMedia (base64 data URL)
func (h *MediaHandler) RegisterMedia(w http.ResponseWriter, r *http.Request) {
	var req RegisterMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}
	if req.ForeignKey == "" {
		respondBadRequest(w, "foreignKey is required")
		return
	}

	up, err := services.DecodeDataURL(req.Media.File)
	if err != nil {
		respondError(w, err)
		return
	}
	up.Filename = req.Media.Filename

	url, err := h.media.Register(r.Context(), req.ForeignKey, req.Type, up)
	if err != nil {
		log.Error().
			Err(err).
			Str("foreign_key", req.ForeignKey).
			Str("type", req.Type).
			Msg("Failed to register media")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message": "media registered",
		"url":     url,
	})
}

// DeleteMediaRequest is the body of DELETE /api/media/deleteMedia
type DeleteMediaRequest struct {
	MediaURL  string `json:"mediaURL"`
	MediaType string `json:"mediaType"`
}

// DeleteMedia handles DELETE /api/media/deleteMedia
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	var req DeleteMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "Invalid request body")
		return
	}
	if req.MediaURL == "" {
		respondBadRequest(w, "mediaURL is required")
		return
	}

	removed, err := h.media.Delete(r.Context(), req.MediaURL, req.MediaType)
	if err != nil {
		log.Error().
			Err(err).
			Str("media_url", req.MediaURL).
			Msg("Failed to delete media")
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{"removed_urls": removed})
}
