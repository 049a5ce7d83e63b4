package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes a document whose top-level keys are language codes into
// language -> entries.
type Parser func(ctx context.Context, content []byte) (map[string]map[string]any, error)

// ParseYAML is the Parser for .yaml and .yml catalogs.
func ParseYAML(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	return decode(ctx, content, yaml.Unmarshal, ErrFailedToParseYAML)
}

// ParseJSON is the Parser for .json catalogs.
func ParseJSON(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	return decode(ctx, content, json.Unmarshal, ErrFailedToParseJSON)
}

// ParserFor picks a Parser by file extension. It returns nil for unknown extensions.
func ParserFor(filename string) Parser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return ParseYAML
	case ".json":
		return ParseJSON
	default:
		return nil
	}
}

func decode(ctx context.Context, content []byte, unmarshal func([]byte, any) error, parseErr error) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	var doc map[string]any
	if err := unmarshal(content, &doc); err != nil {
		return nil, errors.Join(parseErr, err)
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: no languages found", ErrInvalidCatalog)
	}

	out := make(map[string]map[string]any, len(doc))
	for lang, v := range doc {
		entries, ok := normalize(v).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrInvalidCatalog, lang, v)
		}
		out[lang] = entries
	}
	return out, nil
}

// normalize turns nested maps into map[string]any and scalar leaves into
// strings, so "fortune: {1: One}" is addressable as "fortune.1".
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case nil, string, []any:
		return t
	default:
		return fmt.Sprint(t)
	}
}
