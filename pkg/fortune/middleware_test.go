package fortune_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fortunecookie/handler"
	"github.com/dmitrymomot/fortunecookie/pkg/fortune"
	"github.com/dmitrymomot/fortunecookie/pkg/i18n"
)

const headerName = "X-Fortune-Cookie"

func withLocale(lang string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(i18n.SetLocale(r.Context(), lang)))
		})
	}
}

func writeJSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestMiddleware_UnmarkedRouteIsUntouched(t *testing.T) {
	t.Parallel()

	e, src := newEnricher(t, fortune.DefaultConfig(), 0)

	r := chi.NewRouter()
	r.Use(e.Middleware, e.BufferedJSON)
	r.Get("/plain", writeJSON(http.StatusOK, `{"ok":true}`))

	rec := do(t, r, http.MethodGet, "/plain")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(headerName))
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
	assert.Zero(t, src.calls.Load())
}

func TestRoute_HeaderAndBufferedBody(t *testing.T) {
	t.Parallel()

	e, _ := newEnricher(t, fortune.DefaultConfig(), 0)

	r := chi.NewRouter()
	r.Use(withLocale("ko"))
	r.With(e.Route(fortune.Route{}), e.BufferedJSON).Get("/object", writeJSON(http.StatusOK, `{"id":7}`))
	r.With(e.Route(fortune.Route{}), e.BufferedJSON).Get("/array", writeJSON(http.StatusOK, `[1,2]`))
	r.With(e.Route(fortune.Route{}), e.BufferedJSON).Get("/text", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "hello")
	})
	r.With(e.Route(fortune.Route{}), e.BufferedJSON).Get("/broken", writeJSON(http.StatusOK, `{"id":`))

	t.Run("object gets field", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/object")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Fortune one.", rec.Header().Get(headerName))
		assert.JSONEq(t, `{"id":7,"fortune":"운세 하나."}`, rec.Body.String())
	})

	t.Run("array is wrapped", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/array")
		assert.JSONEq(t, `{"data":[1,2],"fortune":"운세 하나."}`, rec.Body.String())
	})

	t.Run("non json passes through with header", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/text")
		assert.Equal(t, "hello", rec.Body.String())
		assert.Equal(t, "Fortune one.", rec.Header().Get(headerName))
	})

	t.Run("invalid json passes through", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/broken")
		assert.Equal(t, `{"id":`, rec.Body.String())
	})
}

func TestRoute_GroupMarkLayers(t *testing.T) {
	t.Parallel()

	e, _ := newEnricher(t, fortune.DefaultConfig(), 0)

	r := chi.NewRouter()
	r.Route("/quotes", func(r chi.Router) {
		r.Use(fortune.Mark(fortune.Route{Mode: fortune.ModeQuote}))
		r.With(e.Route(fortune.Route{})).Get("/", writeJSON(http.StatusOK, `{}`))
		r.With(e.Route(fortune.Route{Mode: fortune.ModeJoke})).Get("/joke", writeJSON(http.StatusOK, `{}`))
	})

	assert.Equal(t, "Quote one.", do(t, r, http.MethodGet, "/quotes/").Header().Get(headerName))
	assert.Equal(t, "Joke one.", do(t, r, http.MethodGet, "/quotes/joke").Header().Get(headerName))
}

func TestMiddleware_EnrichesOnce(t *testing.T) {
	t.Parallel()

	e, src := newEnricher(t, fortune.DefaultConfig(), 0)

	h := fortune.Mark(fortune.Route{})(e.Middleware(e.Middleware(writeJSON(http.StatusOK, `{}`))))
	rec := do(t, h, http.MethodGet, "/x")
	assert.Equal(t, "Fortune one.", rec.Header().Get(headerName))
	assert.Equal(t, int32(2), src.calls.Load(), "one float and one int draw")
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	t.Parallel()

	e, _ := newEnricher(t, fortune.DefaultConfig(), 0)
	h := e.Route(fortune.Route{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := do(t, h, http.MethodGet, "/x")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Fortune one.", rec.Header().Get(headerName))
}

func TestMiddleware_StatusFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		onError     bool
		included    []int
		status      int
		wantPublish bool
	}{
		{name: "error allowed", onError: true, status: http.StatusNotFound, wantPublish: true},
		{name: "error suppressed", onError: false, status: http.StatusInternalServerError, wantPublish: false},
		{name: "success with errors suppressed", onError: false, status: http.StatusOK, wantPublish: true},
		{name: "included code", onError: true, included: []int{201}, status: http.StatusCreated, wantPublish: true},
		{name: "not included code", onError: true, included: []int{201}, status: http.StatusOK, wantPublish: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := fortune.DefaultConfig()
			cfg.IncludeOnError = tt.onError
			cfg.IncludedStatusCodes = tt.included
			e, _ := newEnricher(t, cfg, 0)

			h := e.Route(fortune.Route{})(e.BufferedJSON(writeJSON(tt.status, `{"a":1}`)))
			rec := do(t, h, http.MethodGet, "/x")

			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody(t, rec)
			if tt.wantPublish {
				assert.Equal(t, "Fortune one.", rec.Header().Get(headerName))
				assert.Equal(t, "Fortune one.", body["fortune"])
			} else {
				assert.Empty(t, rec.Header().Get(headerName))
				assert.NotContains(t, body, "fortune")
			}
		})
	}
}

func TestMiddleware_ExcludedPath(t *testing.T) {
	t.Parallel()

	cfg := fortune.DefaultConfig()
	cfg.ExcludePatterns = []string{"/internal/.*"}
	e, src := newEnricher(t, cfg, 0)

	h := e.Route(fortune.Route{})(e.BufferedJSON(writeJSON(http.StatusOK, `{"a":1}`)))
	rec := do(t, h, http.MethodGet, "/internal/stats")
	assert.Empty(t, rec.Header().Get(headerName))
	assert.JSONEq(t, `{"a":1}`, rec.Body.String())
	assert.Zero(t, src.calls.Load())
}

type echoRequest struct{}

func TestDecorator(t *testing.T) {
	t.Parallel()

	e, _ := newEnricher(t, fortune.DefaultConfig(), 0)

	object := handler.Wrap(
		func(ctx handler.Context, _ echoRequest) handler.Response {
			return handler.JSON(map[string]any{"id": 1})
		},
		handler.WithDecorators(fortune.Decorator[handler.Context, echoRequest]()),
	)
	list := handler.Wrap(
		func(ctx handler.Context, _ echoRequest) handler.Response {
			return handler.JSON([]string{"a"})
		},
		handler.WithDecorators(fortune.Decorator[handler.Context, echoRequest]()),
	)
	empty := handler.Wrap(
		func(ctx handler.Context, _ echoRequest) handler.Response { return handler.Empty() },
		handler.WithDecorators(fortune.Decorator[handler.Context, echoRequest]()),
	)

	rec := do(t, e.Route(fortune.Route{})(object), http.MethodGet, "/x")
	assert.JSONEq(t, `{"data":{"id":1,"fortune":"Fortune one."}}`, rec.Body.String())
	assert.Equal(t, "Fortune one.", rec.Header().Get(headerName))

	rec = do(t, e.Route(fortune.Route{})(list), http.MethodGet, "/x")
	assert.JSONEq(t, `{"data":{"data":["a"],"fortune":"Fortune one."}}`, rec.Body.String())

	rec = do(t, e.Route(fortune.Route{})(empty), http.MethodGet, "/x")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, object, http.MethodGet, "/x")
	assert.JSONEq(t, `{"data":{"id":1}}`, rec.Body.String())
}

func TestEnrichBody(t *testing.T) {
	t.Parallel()

	e, _ := newEnricher(t, fortune.DefaultConfig(), 0)

	var captured map[string]any
	h := e.Route(fortune.Route{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		original := map[string]any{"a": 1}
		out, ok := fortune.EnrichBody(r.Context(), http.StatusOK, original)
		require.True(t, ok)
		captured = out.(map[string]any)
		assert.NotContains(t, original, "fortune", "input map must not be mutated")

		out, ok = fortune.EnrichBody(r.Context(), http.StatusOK, nil)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"fortune": "Fortune one."}, out)

		out, ok = fortune.EnrichBody(r.Context(), http.StatusOK, "text")
		require.True(t, ok)
		assert.Equal(t, fortune.Envelope{Data: "text", Fortune: "Fortune one."}, out)

		res, ok := fortune.ResultFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "fortune.1", res.Key)
	}))
	do(t, h, http.MethodGet, "/x")
	assert.Equal(t, map[string]any{"a": 1, "fortune": "Fortune one."}, captured)

	out, ok := fortune.EnrichBody(httptest.NewRequest(http.MethodGet, "/", nil).Context(), http.StatusOK, "x")
	assert.False(t, ok)
	assert.Equal(t, "x", out)
}

func TestEnrichBody_StringKeyedMaps(t *testing.T) {
	t.Parallel()

	type labels map[string]int

	e, _ := newEnricher(t, fortune.DefaultConfig(), 0)
	h := e.Route(fortune.Route{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		original := map[string]string{"status": "ok"}
		out, ok := fortune.EnrichBody(r.Context(), http.StatusOK, original)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"status": "ok", "fortune": "Fortune one."}, out)
		assert.Len(t, original, 1)

		out, ok = fortune.EnrichBody(r.Context(), http.StatusOK, labels{"a": 1})
		require.True(t, ok)
		assert.Equal(t, map[string]any{"a": 1, "fortune": "Fortune one."}, out)

		out, ok = fortune.EnrichBody(r.Context(), http.StatusOK, map[int]string{1: "x"})
		require.True(t, ok)
		assert.Equal(t, fortune.Envelope{Data: map[int]string{1: "x"}, Fortune: "Fortune one."}, out)
	}))
	do(t, h, http.MethodGet, "/x")
}

func TestDecorator_StringMapPayload(t *testing.T) {
	t.Parallel()

	e, _ := newEnricher(t, fortune.DefaultConfig(), 0)
	h := handler.Wrap(
		func(ctx handler.Context, _ echoRequest) handler.Response {
			return handler.JSON(map[string]string{"status": "ok"})
		},
		handler.WithDecorators(fortune.Decorator[handler.Context, echoRequest]()),
	)

	rec := do(t, e.Route(fortune.Route{})(h), http.MethodGet, "/x")
	assert.JSONEq(t, `{"data":{"status":"ok","fortune":"Fortune one."}}`, rec.Body.String())
}

// informationalRecorder keeps every status written and forwards only final ones.
type informationalRecorder struct {
	*httptest.ResponseRecorder
	codes []int
}

func (r *informationalRecorder) WriteHeader(code int) {
	r.codes = append(r.codes, code)
	if code >= http.StatusOK {
		r.ResponseRecorder.WriteHeader(code)
	}
}

func TestBufferedJSON_InformationalStatusPassesThrough(t *testing.T) {
	t.Parallel()

	e, _ := newEnricher(t, fortune.DefaultConfig(), 0)
	h := e.Route(fortune.Route{})(e.BufferedJSON(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusEarlyHints)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":1}`))
	})))

	rec := &informationalRecorder{ResponseRecorder: httptest.NewRecorder()}
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, []int{http.StatusEarlyHints, http.StatusOK}, rec.codes)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"fortune":"Fortune one."}`, rec.Body.String())
	assert.Equal(t, "Fortune one.", rec.Header().Get(headerName))
}
