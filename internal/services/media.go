package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"community-events-backend/internal/models"
	"community-events-backend/internal/repository"
	"community-events-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MediaStore is the slice of the media repository the service needs
type MediaStore interface {
	CreateImage(ctx context.Context, image *models.Image) error
	DeleteImage(ctx context.Context, id string) error
	CreateLink(ctx context.Context, category string, link *models.EventImage) error
	DeleteByURL(ctx context.Context, category, url string) ([]string, error)
}

// ObjectStore is the object storage surface the service needs
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(rawURL string) (string, bool)
}

// Upload carries the decoded bytes of one media file
type Upload struct {
	Data        []byte
	ContentType string
	Filename    string
}

// MediaService handles the media ingestion pipeline
type MediaService struct {
	media MediaStore
	store ObjectStore
	hub   Broadcaster
}

// NewMediaService creates a new media service
func NewMediaService(media MediaStore, store ObjectStore, hub Broadcaster) *MediaService {
	return &MediaService{
		media: media,
		store: store,
		hub:   hub,
	}
}

// NormalizeCategory maps an upload category onto a known one. Unknown
// categories fall back to the event category, matching what clients have
// always relied on; the fallback is logged so it stays visible.
func NormalizeCategory(category string) string {
	switch category {
	case repository.CategoryEvent, repository.CategoryProgram:
		return category
	}
	log.Warn().Str("category", category).Msg("Unknown media category, defaulting to event")
	return repository.CategoryEvent
}

func keyPrefix(category string) string {
	if category == repository.CategoryProgram {
		return storage.ProgramMediaPrefix
	}
	return storage.EventMediaPrefix
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

// DecodeDataURL decodes a base64 data URL ("data:image/png;base64,...")
// into an Upload.
func DecodeDataURL(dataURL string) (Upload, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return Upload{}, fmt.Errorf("%w: not a data URL", ErrBadRequest)
	}
	meta, encoded, found := strings.Cut(dataURL[len("data:"):], ",")
	if !found {
		return Upload{}, fmt.Errorf("%w: malformed data URL", ErrBadRequest)
	}
	if !strings.HasSuffix(meta, ";base64") {
		return Upload{}, fmt.Errorf("%w: data URL is not base64 encoded", ErrBadRequest)
	}
	contentType := strings.TrimSuffix(meta, ";base64")

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: invalid base64 payload", ErrBadRequest)
	}
	if len(data) == 0 {
		return Upload{}, fmt.Errorf("%w: empty file", ErrBadRequest)
	}

	return Upload{Data: data, ContentType: contentType}, nil
}

// Register runs the ingestion pipeline for one file: upload the bytes,
// insert the image row, insert the link row. A failed later step triggers
// compensating cleanup of the earlier steps so neither an orphaned object
// nor an unlinked image row is left behind.
func (s *MediaService) Register(ctx context.Context, parentID, category string, up Upload) (string, error) {
	if parentID == "" {
		return "", fmt.Errorf("%w: parent id is required", ErrBadRequest)
	}
	if len(up.Data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrBadRequest)
	}

	category = NormalizeCategory(category)
	key := fmt.Sprintf("%s/%s%s", keyPrefix(category), uuid.New().String(), extensionFor(up.ContentType))

	url, err := s.store.Upload(ctx, key, up.ContentType, up.Data)
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}

	image := &models.Image{
		ID:    uuid.New().String(),
		URL:   url,
		S3Key: key,
	}
	if err := s.media.CreateImage(ctx, image); err != nil {
		s.compensateObject(ctx, key)
		return "", fmt.Errorf("failed to record media row: %w", err)
	}

	link := &models.EventImage{
		ID:      uuid.New().String(),
		EventID: parentID,
		ImageID: image.ID,
	}
	if err := s.media.CreateLink(ctx, category, link); err != nil {
		s.compensateImage(ctx, image.ID)
		s.compensateObject(ctx, key)
		return "", fmt.Errorf("failed to record media link: %w", err)
	}

	log.Info().
		Str("parent_id", parentID).
		Str("category", category).
		Str("key", key).
		Msg("Media registered")

	s.broadcast(UpdateMessage{Type: "media_registered", Category: category, ParentID: parentID, URL: url})
	return url, nil
}

// Delete removes a media object and its rows by public URL. The URL is
// reversed into a storage key first; an unparseable URL mutates nothing.
// A row deletion failure after the object was removed is reported as an
// error, never as success.
func (s *MediaService) Delete(ctx context.Context, mediaURL, mediaType string) ([]string, error) {
	key, ok := s.store.KeyFromURL(mediaURL)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognized media URL", ErrNotFound)
	}
	category := NormalizeCategory(mediaType)

	if err := s.store.Delete(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to delete media object: %w", err)
	}

	removed, err := s.media.DeleteByURL(ctx, category, mediaURL)
	if err != nil {
		log.Error().
			Err(err).
			Str("url", mediaURL).
			Str("key", key).
			Msg("Object deleted but media rows remain")
		return nil, fmt.Errorf("object deleted but media row removal failed: %w", err)
	}
	if removed == nil {
		removed = []string{}
	}

	log.Info().
		Str("url", mediaURL).
		Str("category", category).
		Int("rows", len(removed)).
		Msg("Media deleted")

	s.broadcast(UpdateMessage{Type: "media_deleted", Category: category, URL: mediaURL})
	return removed, nil
}

func (s *MediaService) compensateObject(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to clean up orphaned object")
	}
}

func (s *MediaService) compensateImage(ctx context.Context, imageID string) {
	if err := s.media.DeleteImage(ctx, imageID); err != nil {
		log.Error().Err(err).Str("image_id", imageID).Msg("Failed to clean up orphaned image row")
	}
}

func (s *MediaService) broadcast(msg UpdateMessage) {
	if s.hub != nil {
		s.hub.Broadcast(msg)
	}
}
