package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Manager loads, creates and saves sessions for HTTP requests.
type Manager struct {
	store     Store
	transport Transport
	config    Config
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a Manager. Without options it uses DefaultConfig, a cookie
// transport and a MemoryStore.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.transport == nil {
		m.transport = m.config.transport()
	}
	if m.store == nil {
		m.store = NewMemoryStore(m.config.SweepInterval, WithMemoryClock(m.now))
	}
	return m
}

// Load returns the session the request presents. It returns ErrNoSession when
// the request carries no token or the store does not know it.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	token, ok := m.transport.Token(r)
	if !ok {
		return nil, ErrNoSession
	}
	s, err := m.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		return nil, ErrExpired
	}
	return s, nil
}

// Ensure returns the presented session or starts a new one. A new session is
// stored and its token issued immediately, before any handler writes the body.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	s, err := m.Load(ctx, r)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrNoSession) && !errors.Is(err, ErrExpired) {
		return nil, err
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := m.now()
	s = NewSession(token, 0)
	s.CreatedAt = now
	s.ExpiresAt = m.expiry(now, now)

	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	m.transport.Issue(w, token, m.config.IdleTimeout)
	return s, nil
}

// Save writes a dirty session back and slides its idle expiry, capped by
// MaxLifetime. Clean sessions are not written.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if !s.Dirty() {
		return nil
	}
	s.ExpiresAt = m.expiry(s.CreatedAt, m.now())
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Destroy deletes the presented session and revokes its token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer m.transport.Revoke(w)
	if token, ok := m.transport.Token(r); ok {
		return m.store.Delete(ctx, token)
	}
	return nil
}

// Close releases the store when it holds resources.
func (m *Manager) Close() error {
	if c, ok := m.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (m *Manager) expiry(created, now time.Time) time.Time {
	idle := now.Add(m.config.IdleTimeout)
	if limit := created.Add(m.config.MaxLifetime); limit.Before(idle) {
		return limit
	}
	return idle
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
