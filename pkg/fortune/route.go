package fortune

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/fortunecookie/pkg/game"
)

// Route is a per-route override. Zero fields defer to the enclosing layer.
type Route struct {
	Mode        Mode
	Game        game.Type
	DisableGame bool
}

type routeContextKey struct{}

// Mark flags the route for enrichment and layers route on top of any marks already
// applied, so a group mark followed by a route mark resolves route-first.
func Mark(route Route) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithRoute(r.Context(), route)))
		})
	}
}

// WithRoute adds a route layer to ctx.
func WithRoute(ctx context.Context, route Route) context.Context {
	outer, _ := RoutesFromContext(ctx)
	layers := make([]Route, 0, len(outer)+1)
	layers = append(layers, outer...)
	layers = append(layers, route)
	return context.WithValue(ctx, routeContextKey{}, layers)
}

// RoutesFromContext returns route layers outermost first, and whether the request is marked.
func RoutesFromContext(ctx context.Context) ([]Route, bool) {
	layers, ok := ctx.Value(routeContextKey{}).([]Route)
	return layers, ok
}

// Resolve applies route layers to cfg field by field. Later layers win.
func Resolve(cfg Config, layers ...Route) Config {
	for _, l := range layers {
		if l.Mode.IsSpecified() {
			cfg.Mode = l.Mode
		}
		if l.Game.IsSpecified() {
			cfg.GameType = l.Game
		}
		if l.DisableGame {
			cfg.GameEnabled = false
		}
	}
	if cfg.GameType == game.TypeNone {
		cfg.GameEnabled = false
	}
	return cfg
}
