package session

import "context"

type sessionContextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// FromContext returns the session attached by the manager middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, _ := ctx.Value(sessionContextKey{}).(*Session)
	return s, s != nil
}
