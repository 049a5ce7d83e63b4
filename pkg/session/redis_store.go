package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys in Redis.
const DefaultRedisPrefix = "session:"

// RedisStore keeps each session as a JSON document whose key TTL tracks
// ExpiresAt, so Redis evicts finished sessions itself.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix sets the key prefix. Empty prefixes are ignored.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: DefaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load decodes the session under token. Missing keys are ErrNoSession; backend
// errors wrap ErrStoreFailure.
func (s *RedisStore) Load(ctx context.Context, token string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.prefix+token).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, ErrNoSession
	case err != nil:
		return nil, errors.Join(ErrStoreFailure, err)
	}

	// Numbers stay json.Number so game state reads back as exact integers.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var sess Session
	if err := dec.Decode(&sess); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	sess.Token = token

	if sess.Expired(time.Now()) {
		_ = s.client.Del(ctx, s.prefix+token).Err()
		return nil, ErrExpired
	}
	return &sess, nil
}

// Save writes sess with a TTL that ends at ExpiresAt.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if err := s.client.Set(ctx, s.prefix+sess.Token, payload, ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// Delete removes the key for token.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.prefix+token).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}
