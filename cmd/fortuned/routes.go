package main

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/fortunecookie/handler"
	"github.com/dmitrymomot/fortunecookie/pkg/fortune"
	"github.com/dmitrymomot/fortunecookie/pkg/game"
	"github.com/dmitrymomot/fortunecookie/pkg/httpserver"
	"github.com/dmitrymomot/fortunecookie/pkg/i18n"
	"github.com/dmitrymomot/fortunecookie/pkg/identity"
	"github.com/dmitrymomot/fortunecookie/pkg/jwt"
	"github.com/dmitrymomot/fortunecookie/pkg/logger"
	"github.com/dmitrymomot/fortunecookie/pkg/session"
)

type dependencies struct {
	logger   *slog.Logger
	catalog  *i18n.Translator
	sessions *session.Manager
	tokens   *jwt.Service
	enricher *fortune.Enricher
	checks   map[string]httpserver.Check
}

type emptyRequest struct{}

type tokenRequest struct {
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	Principal string   `json:"principal"`
}

func newRouter(d dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		accessLog(d.logger),
		middleware.Recoverer,
		i18n.Middleware(i18n.DefaultLangExtractor(i18n.WithSupportedLanguages(d.catalog.SupportedLanguages()...))),
	)
	if d.tokens != nil {
		r.Use(jwt.Middleware(d.tokens, jwt.Optional(), jwt.WithMiddlewareLogger(d.logger)))
	}
	r.Use(d.sessions.Middleware)

	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(d.logger, 2*time.Second, d.checks))

	e := d.enricher
	errorHandler := handler.NewJSONErrorHandler[handler.Context](d.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/plain", handler.Wrap(whoami,
			handler.WithErrorHandler[handler.Context, emptyRequest](errorHandler),
		))

		r.With(e.Route(fortune.Route{})).Get("/fortune", handler.Wrap(whoami,
			handler.WithErrorHandler[handler.Context, emptyRequest](errorHandler),
			handler.WithDecorators(fortune.Decorator[handler.Context, emptyRequest]()),
		))
		r.With(e.Route(fortune.Route{Mode: fortune.ModeJoke}), e.BufferedJSON).Get("/joke", plainJSON)
		r.With(e.Route(fortune.Route{Mode: fortune.ModeQuote}), e.BufferedJSON).Get("/quote", plainJSON)

		r.Route("/games", func(r chi.Router) {
			r.Use(d.sessions.EnsureSession, fortune.Mark(fortune.Route{}))
			r.With(e.Route(fortune.Route{Game: game.TypeNumber})).Get("/number", handler.Wrap(whoami,
				handler.WithDecorators(fortune.Decorator[handler.Context, emptyRequest]()),
			))
			r.With(e.Route(fortune.Route{Game: game.TypeQuiz, Mode: fortune.ModeQuote})).Get("/quiz", handler.Wrap(whoami,
				handler.WithDecorators(fortune.Decorator[handler.Context, emptyRequest]()),
			))
		})

		if d.tokens != nil {
			r.Post("/token", handler.Wrap(issueToken(d.tokens),
				handler.WithBinders[handler.Context, tokenRequest](handler.BindJSON()),
				handler.WithErrorHandler[handler.Context, tokenRequest](errorHandler),
			))
		}
	})

	return r
}

func whoami(ctx handler.Context, _ emptyRequest) handler.Response {
	out := map[string]any{"locale": i18n.GetLocale(ctx)}
	if id, ok := identity.Authenticated(ctx); ok {
		out["user"] = id.Username
	}
	return handler.JSON(out)
}

func plainJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

func issueToken(svc *jwt.Service) handler.HandlerFunc[handler.Context, tokenRequest] {
	return func(ctx handler.Context, req tokenRequest) handler.Response {
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			verr := handler.NewValidationError()
			verr.Add("username", "required")
			return handler.JSONError(verr)
		}
		token, err := svc.Generate(req.Username, req.Roles, req.Principal)
		if err != nil {
			return handler.JSONError(err)
		}
		return handler.JSON(map[string]any{"token": token}, handler.WithJSONStatus(http.StatusCreated))
	}
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.LogAttrs(r.Context(), slog.LevelInfo, "request",
				slog.String("method", r.Method),
				logger.Path(r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
