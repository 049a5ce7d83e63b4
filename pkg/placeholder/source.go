package placeholder

import (
	"fmt"
	"strings"
)

// Kind identifies the data source a placeholder value is read from.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindHeader
	KindSession
	KindIdentity
)

// String returns the source token used in source references.
func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindSession:
		return "session"
	case KindIdentity:
		return "identity"
	default:
		return "invalid"
	}
}

// ParseKind maps a source token to its Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "header":
		return KindHeader, nil
	case "session":
		return KindSession, nil
	case "identity":
		return KindIdentity, nil
	default:
		return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownSource, s)
	}
}

const sourceDelimiter = ":"

// Source is a parsed "<source>:<key>" placeholder source.
type Source struct {
	Kind Kind
	Key  string
}

// String renders the source back to its textual form.
func (s Source) String() string {
	return s.Kind.String() + sourceDelimiter + s.Key
}

// Valid reports whether the source can be handed to a resolver.
func (s Source) Valid() bool {
	return s.Kind != KindInvalid && s.Key != ""
}

// ParseSource parses a source reference. The input must contain exactly two
// non-empty tokens separated by a single colon.
func ParseSource(raw string) (Source, error) {
	parts := strings.Split(raw, sourceDelimiter)
	if len(parts) != 2 {
		return Source{}, fmt.Errorf("%w: %q", ErrInvalidSource, raw)
	}

	source, key := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if source == "" || key == "" {
		return Source{}, fmt.Errorf("%w: %q", ErrInvalidSource, raw)
	}

	kind, err := ParseKind(source)
	if err != nil {
		return Source{}, err
	}

	return Source{Kind: kind, Key: key}, nil
}
