package placeholder

import (
	"net/http"
	"strings"
)

// DefaultGuest replaces tokens whose source yields no value.
const DefaultGuest = "guest"

// Engine replaces {name} tokens with values from a Registry.
type Engine struct {
	registry *Registry
	guest    string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithGuest overrides the replacement used for unresolved tokens.
func WithGuest(guest string) EngineOption {
	return func(e *Engine) {
		e.guest = guest
	}
}

// NewEngine creates an engine. A nil registry gets the default resolvers.
func NewEngine(registry *Registry, opts ...EngineOption) *Engine {
	if registry == nil {
		registry = NewRegistry()
	}

	e := &Engine{
		registry: registry,
		guest:    DefaultGuest,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Substitute visits mapping entries in order and replaces every {name} occurrence
// with the resolved value. Unknown tokens are left as they are.
// Replacement values are never rescanned by the same entry.
func (e *Engine) Substitute(text string, mapping Mapping, r *http.Request) string {
	if text == "" || len(mapping) == 0 {
		return text
	}

	for _, entry := range mapping {
		token := "{" + entry.Name + "}"
		if !strings.Contains(text, token) {
			continue
		}

		value, ok := e.registry.ResolveSource(entry.Source, r)
		if !ok {
			value = e.guest
		}

		text = strings.ReplaceAll(text, token, value)
	}

	return text
}
