package jwt

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/fortunecookie/pkg/identity"
	"github.com/dmitrymomot/fortunecookie/pkg/logger"
)

// Extractor pulls a raw token from a request. An empty string means no token.
type Extractor func(r *http.Request) string

// BearerExtractor reads "Authorization: Bearer <token>".
func BearerExtractor(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// CookieExtractor reads the token from the named cookie.
func CookieExtractor(name string) Extractor {
	return func(r *http.Request) string {
		c, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return c.Value
	}
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	extractors []Extractor
	optional   bool
	logger     *slog.Logger
}

// WithExtractors replaces the default bearer extractor. The first non-empty result wins.
func WithExtractors(extractors ...Extractor) MiddlewareOption {
	return func(c *middlewareConfig) {
		if len(extractors) > 0 {
			c.extractors = extractors
		}
	}
}

// Optional lets requests without a token through as anonymous.
// Requests carrying an invalid token are still rejected.
func Optional() MiddlewareOption {
	return func(c *middlewareConfig) { c.optional = true }
}

// WithMiddlewareLogger sets the logger.
func WithMiddlewareLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Middleware verifies the request token and stores both the claims and the derived
// identity in the request context.
func Middleware(svc *Service, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		extractors: []Extractor{BearerExtractor},
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var raw string
			for _, ex := range cfg.extractors {
				if raw = ex(r); raw != "" {
					break
				}
			}

			if raw == "" {
				if cfg.optional {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			claims, err := svc.Parse(raw)
			if err != nil {
				level := slog.LevelDebug
				if !errors.Is(err, ErrExpiredToken) {
					level = slog.LevelWarn
				}
				cfg.logger.Log(r.Context(), level, "token rejected", logger.Error(err), logger.Component("jwt"))
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			ctx := WithClaims(r.Context(), claims)
			ctx = identity.WithIdentity(ctx, claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
