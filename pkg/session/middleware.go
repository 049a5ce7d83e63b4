package session

import (
	"errors"
	"log/slog"
	"net/http"
)

// Middleware attaches the presented session, if any, to the request context and
// saves it after the handler returns. Requests without a session pass through.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		s, err := m.Load(r.Context(), r)
		if err != nil {
			if !errors.Is(err, ErrNoSession) && !errors.Is(err, ErrExpired) {
				m.logger.WarnContext(r.Context(), "session load failed", slog.Any("error", err))
			}
			next.ServeHTTP(w, r)
			return
		}
		m.serve(next, w, r, s)
	})
}

// EnsureSession is Middleware that starts a session when none is presented.
// It answers 500 when the store is unavailable. A session already in the
// context, attached by an outer Middleware, is reused and saved by that layer.
func (m *Manager) EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		s, err := m.Ensure(r.Context(), w, r)
		if err != nil {
			m.logger.ErrorContext(r.Context(), "session start failed", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		m.serve(next, w, r, s)
	})
}

func (m *Manager) serve(next http.Handler, w http.ResponseWriter, r *http.Request, s *Session) {
	next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	if err := m.Save(r.Context(), s); err != nil {
		m.logger.WarnContext(r.Context(), "session save failed", slog.Any("error", err))
	}
}
