package session

import "errors"

var (
	ErrNoSession       = errors.New("session: no session")
	ErrExpired         = errors.New("session: expired")
	ErrInvalidSession  = errors.New("session: invalid session")
	ErrTokenGeneration = errors.New("session: failed to generate token")
	ErrStoreFailure    = errors.New("session: store failure")
)
