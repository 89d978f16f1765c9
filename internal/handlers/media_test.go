package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"community-events-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMediaService struct {
	registered []string
	url        string
	registerFn func(parentID, category string, up services.Upload) (string, error)
	deleteFn   func(mediaURL, mediaType string) ([]string, error)
}

func (s *stubMediaService) Register(_ context.Context, parentID, category string, up services.Upload) (string, error) {
	if s.registerFn != nil {
		return s.registerFn(parentID, category, up)
	}
	s.registered = append(s.registered, parentID)
	return s.url, nil
}

func (s *stubMediaService) Delete(_ context.Context, mediaURL, mediaType string) ([]string, error) {
	if s.deleteFn != nil {
		return s.deleteFn(mediaURL, mediaType)
	}
	return []string{mediaURL}, nil
}

func TestRegisterMediaDataURL(t *testing.T) {
	svc := &stubMediaService{url: "https://bucket/event-media/a.png"}
	h := NewMediaHandler(svc)

	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	body := fmt.Sprintf(`{"media":{"file":"data:image/png;base64,%s"},"foreignKey":"42","type":"event"}`, payload)

	req := httptest.NewRequest(http.MethodPost, "/api/media/registerMedia", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.RegisterMedia(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	respBody := decodeBody(t, rec)
	assert.Equal(t, float64(200), respBody["status"])
	assert.Equal(t, []string{"42"}, svc.registered)
}

func TestRegisterMediaRejectsBadDataURL(t *testing.T) {
	h := NewMediaHandler(&stubMediaService{})

	body := `{"media":{"file":"not-a-data-url"},"foreignKey":"42","type":"event"}`
	req := httptest.NewRequest(http.MethodPost, "/api/media/registerMedia", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.RegisterMedia(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterMediaRequiresForeignKey(t *testing.T) {
	h := NewMediaHandler(&stubMediaService{})

	body := `{"media":{"file":"data:image/png;base64,aGk="}}`
	req := httptest.NewRequest(http.MethodPost, "/api/media/registerMedia", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.RegisterMedia(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadFileMultipart(t *testing.T) {
	var gotUpload services.Upload
	svc := &stubMediaService{
		registerFn: func(parentID, category string, up services.Upload) (string, error) {
			gotUpload = up
			assert.Equal(t, "42", parentID)
			assert.Equal(t, "event", category)
			return "https://bucket/event-media/a.png", nil
		},
	}
	h := NewMediaHandler(svc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("id", "42"))
	require.NoError(t, writer.WriteField("upload_type", "event"))
	part, err := writer.CreateFormFile("media", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media/upload/file", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	h.UploadFile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []byte("png-bytes"), gotUpload.Data)
	assert.Equal(t, "photo.png", gotUpload.Filename)
}

func TestUploadFileMissingID(t *testing.T) {
	h := NewMediaHandler(&stubMediaService{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("media", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media/upload/file", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	h.UploadFile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteMediaUnparseableURLIs404(t *testing.T) {
	svc := &stubMediaService{
		deleteFn: func(string, string) ([]string, error) {
			return nil, fmt.Errorf("%w: unrecognized media URL", services.ErrNotFound)
		},
	}
	h := NewMediaHandler(svc)

	body := `{"mediaURL":"https://elsewhere/cat.png","mediaType":"event"}`
	req := httptest.NewRequest(http.MethodDelete, "/api/media/deleteMedia", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.DeleteMedia(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	respBody := decodeBody(t, rec)
	assert.Equal(t, float64(404), respBody["status"])
}

func TestDeleteMediaReturnsRemovedURLs(t *testing.T) {
	h := NewMediaHandler(&stubMediaService{})

	body := `{"mediaURL":"https://bucket/event-media/a.png","mediaType":"event"}`
	req := httptest.NewRequest(http.MethodDelete, "/api/media/deleteMedia", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.DeleteMedia(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	respBody := decodeBody(t, rec)
	assert.Equal(t, []interface{}{"https://bucket/event-media/a.png"}, respBody["removed_urls"])
}
