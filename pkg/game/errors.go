package game

import "errors"

// ErrUnknownType is returned when a game type name is not recognised.
var ErrUnknownType = errors.New("game: unknown type")
