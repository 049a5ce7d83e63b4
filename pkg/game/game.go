package game

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/fortunecookie/pkg/i18n"
	"github.com/dmitrymomot/fortunecookie/pkg/random"
)

// Type selects a game module.
type Type string

const (
	TypeUnspecified Type = ""
	TypeNone        Type = "none"
	TypeNumber      Type = "number"
	TypeQuiz        Type = "quiz"
)

// IsSpecified reports whether t overrides an outer setting.
func (t Type) IsSpecified() bool {
	return t != TypeUnspecified
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	switch v := Type(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case TypeUnspecified, TypeNone, TypeNumber, TypeQuiz:
		*t = v
		return nil
	case "unspecified":
		*t = TypeUnspecified
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, string(text))
	}
}

// DefaultRange is used when Input.Range is not positive.
const DefaultRange = 10

// Store is the session-scoped state a game reads and writes.
// *session.Session satisfies it.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// Translator renders a catalog message, falling back to def.
// *i18n.Translator satisfies it.
type Translator interface {
	Td(lang, key, def string, args ...string) string
}

// Input is what a game sees of the current request.
type Input struct {
	Session Store
	Header  http.Header
	Locale  string
	Range   int
}

func (in Input) gameRange() int {
	if in.Range < 1 {
		return DefaultRange
	}
	return in.Range
}

// header returns the first value of name and whether the header was sent at all.
func (in Input) header(name string) (string, bool) {
	if in.Header == nil {
		return "", false
	}
	values := in.Header.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Game appends feedback to message. The message already shown is always kept as the prefix.
type Game interface {
	Play(in Input, message string) string
}

// Option configures game modules.
type Option func(*options)

type options struct {
	rng        random.Source
	translator Translator
	logger     *slog.Logger
}

// WithRandom sets the random source. It must be safe for concurrent use.
func WithRandom(src random.Source) Option {
	return func(o *options) {
		if src != nil {
			o.rng = src
		}
	}
}

// WithTranslator sets the message catalog.
func WithTranslator(tr Translator) Option {
	return func(o *options) {
		if tr != nil {
			o.translator = tr
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		rng:        random.Default(),
		translator: builtinTranslator{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// builtinTranslator renders the default English texts.
type builtinTranslator struct{}

func (builtinTranslator) Td(_, _, def string, args ...string) string {
	return i18n.Format(def, args...)
}

func appendMessage(message string, parts ...string) string {
	for _, p := range parts {
		if p == "" {
			continue
		}
		if message == "" {
			message = p
			continue
		}
		message += " " + p
	}
	return message
}
