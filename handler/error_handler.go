package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/fortunecookie/pkg/logger"
)

// logLevelFor maps HTTP status codes to log levels.
func logLevelFor(status int) slog.Level {
	if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewJSONErrorHandler logs err and renders it as a JSON error body.
// A nil logger uses slog.Default.
func NewJSONErrorHandler[C Context](log *slog.Logger) ErrorHandler[C] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx C, err error) {
		r := ctx.Request()
		status, detail := describe(err)
		resp := envelopeResponse{status: status, env: JSONResponse{Error: detail}}

		log.LogAttrs(r.Context(), logLevelFor(status), "request error",
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("handler"),
		)

		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil && !errors.Is(renderErr, http.ErrHandlerTimeout) {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
