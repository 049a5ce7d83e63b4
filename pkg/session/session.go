package session

import (
	"encoding/json"
	"maps"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Session is the per-client document holding game rounds and other attributes.
// A *Session belongs to one request; stores keep their own copies.
type Session struct {
	ID        uuid.UUID      `json:"id"`
	Token     string         `json:"-"`
	Values    map[string]any `json:"values,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`

	dirty bool
}

// NewSession returns an empty session for token that expires after ttl.
func NewSession(token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Token:     token,
		Values:    map[string]any{},
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Get returns the attribute stored under key.
func (s *Session) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.Values[key]
	return v, ok
}

// Int returns the attribute under key as an int.
func (s *Session) Int(key string) (int, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	return ToInt(v)
}

// Set stores value under key and marks the session for saving.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Values == nil {
		s.Values = map[string]any{}
	}
	s.Values[key] = value
	s.dirty = true
}

// Delete removes key and marks the session for saving.
func (s *Session) Delete(key string) {
	if s == nil {
		return
	}
	if _, ok := s.Values[key]; ok {
		delete(s.Values, key)
		s.dirty = true
	}
}

// Dirty reports whether the session changed since it was loaded or saved.
func (s *Session) Dirty() bool {
	return s != nil && s.dirty
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && !now.Before(s.ExpiresAt)
}

func (s *Session) clone() *Session {
	c := *s
	c.Values = maps.Clone(s.Values)
	c.dirty = false
	return &c
}

// ToInt converts a numeric attribute into an int. It accepts the forms a value
// takes after a JSON round trip (float64, json.Number) and decimal strings.
func ToInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}
