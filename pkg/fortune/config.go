package fortune

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrymomot/fortunecookie/pkg/game"
	"github.com/dmitrymomot/fortunecookie/pkg/placeholder"
)

// Config is the global enrichment configuration. Env names are relative; the service
// loads it under the FORTUNE_ prefix.
type Config struct {
	Enabled             bool                `env:"ENABLED" envDefault:"true" yaml:"enabled"`
	IncludeHeader       bool                `env:"INCLUDE_HEADER" envDefault:"true" yaml:"include_header"`
	HeaderName          string              `env:"HEADER_NAME" envDefault:"X-Fortune-Cookie" yaml:"header_name"`
	IncludeInResponse   bool                `env:"INCLUDE_IN_RESPONSE" envDefault:"true" yaml:"include_in_response"`
	ResponseFortuneName string              `env:"RESPONSE_FIELD" envDefault:"fortune" yaml:"response_field"`
	ExcludePatterns     []string            `env:"EXCLUDE_PATTERNS" envSeparator:"," yaml:"exclude_patterns"`
	IncludeOnError      bool                `env:"INCLUDE_ON_ERROR" envDefault:"true" yaml:"include_on_error"`
	IncludedStatusCodes []int               `env:"INCLUDED_STATUS_CODES" envSeparator:"," yaml:"included_status_codes"`
	MaxFortuneLength    int                 `env:"MAX_LENGTH" envDefault:"0" yaml:"max_length"`
	FortunesCount       int                 `env:"COUNT" envDefault:"10" yaml:"count"`
	PlaceholderEnabled  bool                `env:"PLACEHOLDER_ENABLED" envDefault:"false" yaml:"placeholder_enabled"`
	PlaceholderMapping  placeholder.Mapping `env:"PLACEHOLDER_MAPPING" yaml:"placeholder_mapping"`
	Mode                Mode                `env:"MODE" envDefault:"fortune" yaml:"mode"`
	GameEnabled         bool                `env:"GAME_ENABLED" envDefault:"false" yaml:"game_enabled"`
	GameType            game.Type           `env:"GAME_TYPE" envDefault:"number" yaml:"game_type"`
	GameRange           int                 `env:"GAME_RANGE" envDefault:"10" yaml:"game_range"`
	Debug               bool                `env:"DEBUG" envDefault:"false" yaml:"debug"`
}

// DefaultConfig returns the same values as the env defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:             true,
		IncludeHeader:       true,
		HeaderName:          "X-Fortune-Cookie",
		IncludeInResponse:   true,
		ResponseFortuneName: "fortune",
		IncludeOnError:      true,
		FortunesCount:       10,
		Mode:                ModeDefault,
		GameType:            game.TypeNumber,
		GameRange:           game.DefaultRange,
	}
}

// Validate checks the configuration and compiles exclude patterns.
// Placeholder sources are not checked: a malformed source resolves to the guest
// string at request time.
func (c Config) Validate() error {
	var errs []error

	if c.IncludeHeader && !validHeaderName(c.HeaderName) {
		errs = append(errs, fmt.Errorf("header name %q is not a valid HTTP header token", c.HeaderName))
	}
	if c.IncludeInResponse && c.ResponseFortuneName == "" {
		errs = append(errs, errors.New("response field name is empty"))
	}
	if c.FortunesCount < 1 {
		errs = append(errs, fmt.Errorf("fortunes count must be at least 1, got %d", c.FortunesCount))
	}
	if c.GameRange < 1 {
		errs = append(errs, fmt.Errorf("game range must be at least 1, got %d", c.GameRange))
	}
	if c.MaxFortuneLength < 0 {
		errs = append(errs, fmt.Errorf("max length must not be negative, got %d", c.MaxFortuneLength))
	}
	for _, code := range c.IncludedStatusCodes {
		if code < 100 || code > 999 {
			errs = append(errs, fmt.Errorf("included status code %d is out of range", code))
		}
	}
	if _, err := compilePatterns(c.ExcludePatterns); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// compilePatterns anchors each pattern so it must match the whole path.
func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func validHeaderName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum && !strings.ContainsRune("!#$%&'*+-.^_`|~", c) {
			return false
		}
	}
	return true
}
