package session

import "context"

// Store persists sessions by token. Load returns ErrNoSession for unknown tokens
// and ErrExpired for sessions past ExpiresAt. Save creates or replaces.
type Store interface {
	Load(ctx context.Context, token string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, token string) error
}
