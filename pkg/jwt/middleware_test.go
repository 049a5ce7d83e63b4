package jwt_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fortunecookie/pkg/identity"
	"github.com/dmitrymomot/fortunecookie/pkg/jwt"
)

func whoami(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.Authenticated(r.Context())
	if !ok {
		_, _ = w.Write([]byte("guest"))
		return
	}
	if _, ok := jwt.ClaimsFromContext(r.Context()); !ok {
		http.Error(w, "no claims", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(id.Username))
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New(testKey)
	require.NoError(t, err)
	token, err := svc.Generate("alice", []string{"ROLE_USER"}, "")
	require.NoError(t, err)

	strict := jwt.Middleware(svc)(http.HandlerFunc(whoami))
	optional := jwt.Middleware(svc, jwt.Optional())(http.HandlerFunc(whoami))

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := serve(strict, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})

	t.Run("missing token strict", func(t *testing.T) {
		rec := serve(strict, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token optional", func(t *testing.T) {
		rec := serve(optional, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "guest", rec.Body.String())
	})

	t.Run("invalid token optional", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer broken")
		rec := serve(optional, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("cookie extractor", func(t *testing.T) {
		h := jwt.Middleware(svc, jwt.WithExtractors(jwt.CookieExtractor("token")))(http.HandlerFunc(whoami))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		rec := serve(h, req)
		assert.Equal(t, "alice", rec.Body.String())
	})
}

func TestBearerExtractor(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, jwt.BearerExtractor(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, jwt.BearerExtractor(req))

	req.Header.Set("Authorization", "bearer abc")
	assert.Equal(t, "abc", jwt.BearerExtractor(req))
}
