package placeholder

import "errors"

var (
	// ErrInvalidSource is returned when a source reference is not "<source>:<key>".
	ErrInvalidSource = errors.New("placeholder: invalid source reference")

	// ErrUnknownSource is returned when the source token names no resolver kind.
	ErrUnknownSource = errors.New("placeholder: unknown source")

	// ErrInvalidMapping is returned when a mapping entry cannot be parsed.
	ErrInvalidMapping = errors.New("placeholder: invalid mapping")
)
