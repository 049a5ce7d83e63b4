package game

import (
	"io"
	"log/slog"
)

// Registry dispatches Play calls by game type.
type Registry struct {
	games  map[Type]Game
	logger *slog.Logger
}

// NewRegistry returns a registry with the number-guess and quiz games.
func NewRegistry(opts ...Option) *Registry {
	o := newOptions(opts)
	return &Registry{
		games: map[Type]Game{
			TypeNumber: NewNumberGuess(opts...),
			TypeQuiz:   NewQuiz(nil, opts...),
		},
		logger: o.logger,
	}
}

// NewEmptyRegistry returns a registry without games.
func NewEmptyRegistry() *Registry {
	return &Registry{
		games:  make(map[Type]Game),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Register adds or replaces the game for t.
func (r *Registry) Register(t Type, g Game) *Registry {
	if t.IsSpecified() && t != TypeNone && g != nil {
		r.games[t] = g
	}
	return r
}

// Get returns the game registered for t.
func (r *Registry) Get(t Type) (Game, bool) {
	g, ok := r.games[t]
	return g, ok
}

// Play runs the game registered for t. Unknown types, TypeNone and panicking
// games leave message unchanged.
func (r *Registry) Play(t Type, in Input, message string) (result string) {
	g, ok := r.games[t]
	if !ok {
		return message
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("game module failed", slog.String("game", string(t)), slog.Any("panic", rec))
			result = message
		}
	}()

	return g.Play(in, message)
}
