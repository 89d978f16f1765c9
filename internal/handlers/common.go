package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"community-events-backend/internal/services"
)

// Error kinds surfaced to clients
const (
	KindBadRequest   = "BAD_REQUEST"
	KindUnauthorized = "UNAUTHORIZED"
	KindForbidden    = "FORBIDDEN"
	KindNotFound     = "NOT_FOUND"
	KindServerError  = "SERVER_ERROR"
)

type errorBody struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// respond writes the single response envelope used by every handler. The
// body carries a status field mirroring the HTTP status code, so clients
// reading either see the same outcome.
func respond(w http.ResponseWriter, status int, payload map[string]interface{}) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["status"] = status

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondData sends a success envelope with a data field
func respondData(w http.ResponseWriter, data interface{}) {
	respond(w, http.StatusOK, map[string]interface{}{"data": data})
}

// respondError maps a service error onto the envelope
func respondError(w http.ResponseWriter, err error) {
	status, kind := classify(err)
	respond(w, status, map[string]interface{}{
		"error": errorBody{Kind: kind, Detail: err.Error()},
	})
}

// respondBadRequest sends a bad-request envelope with a literal detail
func respondBadRequest(w http.ResponseWriter, detail string) {
	respond(w, http.StatusBadRequest, map[string]interface{}{
		"error": errorBody{Kind: KindBadRequest, Detail: detail},
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrBadRequest):
		return http.StatusBadRequest, KindBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized, KindUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, KindForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, KindNotFound
	default:
		return http.StatusInternalServerError, KindServerError
	}
}
