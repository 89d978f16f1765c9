package services

import "errors"

// Error kinds mapped to HTTP-like statuses by the handlers. Services wrap
// these with fmt.Errorf("%w: ...") so callers can errors.Is them.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)
