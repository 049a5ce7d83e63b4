package fortune

import (
	"fmt"
	"strings"
)

// Mode selects the message namespace.
type Mode string

const (
	ModeUnspecified Mode = ""
	ModeDefault     Mode = "fortune"
	ModeJoke        Mode = "joke"
	ModeQuote       Mode = "quote"
)

// IsSpecified reports whether m overrides an outer setting.
func (m Mode) IsSpecified() bool {
	return m != ModeUnspecified
}

// Namespace returns the catalog key prefix for m. Unspecified means ModeDefault.
func (m Mode) Namespace() string {
	switch m {
	case ModeJoke:
		return "fortune.joke"
	case ModeQuote:
		return "fortune.quote"
	default:
		return "fortune"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. "default" is accepted for ModeDefault.
func (m *Mode) UnmarshalText(text []byte) error {
	switch v := strings.ToLower(strings.TrimSpace(string(text))); v {
	case "", "unspecified":
		*m = ModeUnspecified
	case "default", string(ModeDefault):
		*m = ModeDefault
	case string(ModeJoke):
		*m = ModeJoke
	case string(ModeQuote):
		*m = ModeQuote
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, string(text))
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m), nil
}
