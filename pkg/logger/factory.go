package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/fortunecookie/pkg/environment"
)

// Format selects the slog handler.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

func (f Format) valid() bool {
	return f == FormatJSON || f == FormatText
}

func (f Format) handler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if f == FormatText {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// Config is the environment-driven part of the logger setup.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format Format `env:"LOG_FORMAT" envDefault:"json"`
}

// Option configures New.
type Option func(*settings)

type settings struct {
	level      slog.Level
	format     Format
	out        io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// WithLevel sets the minimum level.
func WithLevel(l slog.Level) Option {
	return func(s *settings) { s.level = l }
}

// WithFormat sets the output format and panics on anything but json or text.
func WithFormat(f Format) Option {
	if !f.valid() {
		panic(fmt.Sprintf("logger: unknown format %q", f))
	}
	return func(s *settings) { s.format = f }
}

// WithOutput redirects records, e.g. to a test buffer.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.out = w
		}
	}
}

// WithAttr attaches attrs to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(s *settings) { s.attrs = append(s.attrs, attrs...) }
}

// WithContextExtractors adds per-record attrs read from the logging context.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) {
		for _, ex := range extractors {
			if ex != nil {
				s.extractors = append(s.extractors, ex)
			}
		}
	}
}

// WithEnvironment picks defaults per environment (debug text locally, info JSON
// on staging and production) and tags records with service and env.
func WithEnvironment(env environment.Environment, service string) Option {
	return func(s *settings) {
		s.level, s.format = slog.LevelDebug, FormatText
		if env.IsProduction() || env == environment.Staging {
			s.level, s.format = slog.LevelInfo, FormatJSON
		}
		if service != "" {
			s.attrs = append(s.attrs, slog.String("service", service))
		}
		s.attrs = append(s.attrs, slog.String("env", string(env)))
	}
}

// WithConfig overrides level and format from cfg; unparsable values are ignored
// so that WithEnvironment defaults survive an empty environment.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		if lvl, err := ParseLevel(cfg.Level); err == nil {
			s.level = lvl
		}
		if cfg.Format.valid() {
			s.format = cfg.Format
		}
	}
}

// ParseLevel accepts slog level names ("debug", "warn", "info+2"). It returns
// LevelInfo with the error for anything else.
func ParseLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}

// New builds the service logger: JSON at info level on stdout unless options say otherwise.
func New(opts ...Option) *slog.Logger {
	s := settings{level: slog.LevelInfo, format: FormatJSON, out: os.Stdout}
	for _, opt := range opts {
		opt(&s)
	}

	h := s.format.handler(s.out, &slog.HandlerOptions{Level: s.level})
	if len(s.attrs) > 0 {
		h = h.WithAttrs(s.attrs)
	}
	return slog.New(withExtractors(h, s.extractors))
}

// Discard returns a logger that drops every record. Packages use it as their default.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
