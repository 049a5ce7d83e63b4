package fortune

import "errors"

var (
	ErrUnknownMode    = errors.New("fortune: unknown mode")
	ErrInvalidConfig  = errors.New("fortune: invalid configuration")
	ErrInvalidPattern = errors.New("fortune: invalid exclude pattern")
	ErrNilCatalog     = errors.New("fortune: nil catalog")
	ErrLoadingCatalog = errors.New("fortune: failed to load catalog")
)
