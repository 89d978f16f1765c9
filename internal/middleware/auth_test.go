package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"community-events-backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	claims services.SessionClaims
	err    error
}

func (s *stubValidator) ValidateSession(string) (services.SessionClaims, error) {
	return s.claims, s.err
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestAuthenticateMissingHeader(t *testing.T) {
	next, called := okHandler()
	h := Authenticate(&stubValidator{})(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticateBadToken(t *testing.T) {
	next, called := okHandler()
	h := Authenticate(&stubValidator{err: errors.New("expired")})(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer junk")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticateUnapprovedSession(t *testing.T) {
	next, called := okHandler()
	h := Authenticate(&stubValidator{
		claims: services.SessionClaims{Email: "a@b.c", Role: "admin", Approved: false},
	})(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}

func TestAuthenticatePutsClaimsInContext(t *testing.T) {
	var got services.SessionClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetSession(r.Context())
		require.True(t, ok)
		got = claims
	})
	h := Authenticate(&stubValidator{
		claims: services.SessionClaims{Email: "a@b.c", Role: "admin", Approved: true},
	})(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "admin", got.Role)
}

func withSession(r *http.Request, claims services.SessionClaims) *http.Request {
	var out *http.Request
	h := Authenticate(&stubValidator{claims: claims})(http.HandlerFunc(
		func(w http.ResponseWriter, req *http.Request) { out = req }))
	r.Header.Set("Authorization", "Bearer tok")
	h.ServeHTTP(httptest.NewRecorder(), r)
	return out
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	next, called := okHandler()
	h := RequireRoles("admin")(next)

	req := withSession(httptest.NewRequest(http.MethodGet, "/", nil),
		services.SessionClaims{Email: "a@b.c", Role: "admin", Approved: true})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestRequireRolesRejectsOtherRole(t *testing.T) {
	next, called := okHandler()
	h := RequireRoles("admin")(next)

	req := withSession(httptest.NewRequest(http.MethodGet, "/", nil),
		services.SessionClaims{Email: "a@b.c", Role: "member", Approved: true})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}

func TestRequireRolesEmptyListDeniesEveryone(t *testing.T) {
	next, called := okHandler()
	h := RequireRoles()(next)

	req := withSession(httptest.NewRequest(http.MethodGet, "/", nil),
		services.SessionClaims{Email: "a@b.c", Role: "admin", Approved: true})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called, "an empty allow-list must not behave as unrestricted")
}

func TestRequireRolesWithoutSession(t *testing.T) {
	next, called := okHandler()
	h := RequireRoles("admin")(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}
