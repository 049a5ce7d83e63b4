package config

import (
	"errors"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by configs that check themselves after parsing.
type Validator interface {
	Validate() error
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	files    []string
	optional bool
	prefix   string
	environ  map[string]string
}

// WithEnvFiles reads the given .env files in order instead of ./.env.
// Missing files are an error.
func WithEnvFiles(files ...string) Option {
	return func(l *loader) {
		l.files = files
		l.optional = false
	}
}

// WithPrefix only reads variables with the given prefix, e.g. "FORTUNE_".
func WithPrefix(prefix string) Option {
	return func(l *loader) {
		l.prefix = prefix
	}
}

// WithEnvironment replaces the process environment as the variable source.
func WithEnvironment(vars map[string]string) Option {
	return func(l *loader) {
		l.environ = vars
	}
}

// Load parses the environment into a new T using `env` and `envDefault` tags.
//
// Without options the process environment is used, overlaid on a ./.env file when one
// exists. Process variables win over file values. If *T implements Validator, Validate
// runs after parsing.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	cfg, err := config.Load[Config]()
func Load[T any](opts ...Option) (T, error) {
	var cfg T

	l := &loader{files: []string{".env"}, optional: true}
	for _, opt := range opts {
		opt(l)
	}

	vars, err := l.collect()
	if err != nil {
		return cfg, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Environment: vars,
		Prefix:      l.prefix,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}

	if v, ok := any(&cfg).(Validator); ok {
		if err := v.Validate(); err != nil {
			return cfg, errors.Join(ErrInvalidConfig, err)
		}
	}

	return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (l *loader) collect() (map[string]string, error) {
	vars := make(map[string]string)

	for _, file := range l.files {
		values, err := godotenv.Read(file)
		if err != nil {
			if l.optional && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, errors.Join(ErrReadingEnvFile, err)
		}
		for k, v := range values {
			vars[k] = v
		}
	}

	if l.environ != nil {
		for k, v := range l.environ {
			vars[k] = v
		}
		return vars, nil
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars, nil
}
