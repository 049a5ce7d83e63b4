package placeholder

import (
	"io"
	"log/slog"
	"net/http"
)

// Resolver reads a single value for key from the request scope.
type Resolver interface {
	Resolve(r *http.Request, key string) (string, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(r *http.Request, key string) (string, bool)

// Resolve calls f(r, key).
func (f ResolverFunc) Resolve(r *http.Request, key string) (string, bool) {
	return f(r, key)
}

// Registry dispatches source references to resolvers by Kind.
type Registry struct {
	resolvers map[Kind]Resolver
	logger    *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithResolver registers or replaces the resolver for kind.
func WithResolver(kind Kind, resolver Resolver) RegistryOption {
	return func(reg *Registry) {
		if kind != KindInvalid && resolver != nil {
			reg.resolvers[kind] = resolver
		}
	}
}

// WithLogger sets the logger for resolution diagnostics.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(reg *Registry) {
		if logger != nil {
			reg.logger = logger
		}
	}
}

// NewRegistry creates a registry with header, session and identity resolvers.
func NewRegistry(opts ...RegistryOption) *Registry {
	reg := &Registry{
		resolvers: map[Kind]Resolver{
			KindHeader:   ResolverFunc(HeaderResolver),
			KindSession:  ResolverFunc(SessionResolver),
			KindIdentity: ResolverFunc(IdentityResolver),
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(reg)
	}

	return reg
}

// Resolve parses raw and resolves it. Malformed sources are not found.
func (reg *Registry) Resolve(raw string, r *http.Request) (string, bool) {
	source, err := ParseSource(raw)
	if err != nil {
		reg.logger.Debug("placeholder source rejected", slog.String("source", raw), slog.Any("error", err))
		return "", false
	}
	return reg.ResolveSource(source, r)
}

// ResolveSource resolves an already parsed source.
// A panicking resolver is treated as not found.
func (reg *Registry) ResolveSource(source Source, r *http.Request) (value string, found bool) {
	if !source.Valid() || r == nil {
		return "", false
	}

	resolver, ok := reg.resolvers[source.Kind]
	if !ok {
		return "", false
	}

	defer func() {
		if rec := recover(); rec != nil {
			reg.logger.DebugContext(r.Context(), "placeholder resolver failed",
				slog.String("source", source.String()),
				slog.Any("panic", rec),
			)
			value, found = "", false
		}
	}()

	value, found = resolver.Resolve(r, source.Key)
	if !found {
		reg.logger.DebugContext(r.Context(), "placeholder value not found", slog.String("source", source.String()))
	}
	return value, found
}
