package fortune

import (
	"log/slog"
	"net/http"
	"regexp"
	"unicode/utf8"

	"github.com/dmitrymomot/fortunecookie/pkg/game"
	"github.com/dmitrymomot/fortunecookie/pkg/i18n"
	"github.com/dmitrymomot/fortunecookie/pkg/logger"
	"github.com/dmitrymomot/fortunecookie/pkg/placeholder"
	"github.com/dmitrymomot/fortunecookie/pkg/session"
)

// Ellipsis is appended to truncated header messages.
const Ellipsis = "..."

// Result is the outcome of enriching one request.
type Result struct {
	Key    string
	Locale string
	// Header is empty when the header is not published.
	Header string
	// Body is empty when the body field is not published.
	Body string
}

// Enricher generates and publishes messages for marked routes.
type Enricher struct {
	cfg      Config
	exclude  []*regexp.Regexp
	included map[int]struct{}

	catalog Catalog
	keys    *KeyGenerator
	engine  *placeholder.Engine
	games   *game.Registry
	logger  *slog.Logger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithKeyGenerator replaces the default key generator.
func WithKeyGenerator(g *KeyGenerator) Option {
	return func(e *Enricher) {
		if g != nil {
			e.keys = g
		}
	}
}

// WithEngine replaces the placeholder engine.
func WithEngine(engine *placeholder.Engine) Option {
	return func(e *Enricher) {
		if engine != nil {
			e.engine = engine
		}
	}
}

// WithGames replaces the game registry.
func WithGames(games *game.Registry) Option {
	return func(e *Enricher) {
		if games != nil {
			e.games = games
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Enricher) {
		if l != nil {
			e.logger = l
		}
	}
}

// New validates cfg and builds an Enricher over catalog.
func New(cfg Config, catalog Catalog, opts ...Option) (*Enricher, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	exclude, err := compilePatterns(cfg.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	e := &Enricher{
		cfg:     cfg,
		exclude: exclude,
		catalog: catalog,
		keys:    NewKeyGenerator(),
		logger:  logger.Discard(),
	}
	if len(cfg.IncludedStatusCodes) > 0 {
		e.included = make(map[int]struct{}, len(cfg.IncludedStatusCodes))
		for _, code := range cfg.IncludedStatusCodes {
			e.included[code] = struct{}{}
		}
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.engine == nil {
		e.engine = placeholder.NewEngine(placeholder.NewRegistry(placeholder.WithLogger(e.logger)))
	}
	if e.games == nil {
		e.games = game.NewRegistry(game.WithLogger(e.logger))
	}
	e.logger = e.logger.With(logger.Component("fortune"))

	if err := cfg.PlaceholderMapping.Validate(); err != nil {
		e.logger.Warn("placeholder mapping has malformed sources; they resolve to the guest string", logger.Error(err))
	}

	return e, nil
}

// Config returns the global configuration.
func (e *Enricher) Config() Config {
	return e.cfg
}

// Excluded reports whether path matches an exclude pattern.
func (e *Enricher) Excluded(path string) bool {
	for _, re := range e.exclude {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// StatusAllowed applies IncludeOnError and IncludedStatusCodes to status.
func (e *Enricher) StatusAllowed(status int) bool {
	if status >= http.StatusBadRequest && !e.cfg.IncludeOnError {
		return false
	}
	if e.included != nil {
		_, ok := e.included[status]
		return ok
	}
	return true
}

// Enrich runs the pipeline for r. It returns false without drawing any random value
// when the request is unmarked, enrichment is disabled, or the path is excluded.
// The session, if any, must be in the request context for games to keep state.
func (e *Enricher) Enrich(r *http.Request) (Result, bool) {
	layers, marked := RoutesFromContext(r.Context())
	if !marked || !e.cfg.Enabled || e.Excluded(r.URL.Path) {
		return Result{}, false
	}
	cfg := Resolve(e.cfg, layers...)
	return e.enrich(r, cfg), true
}

func (e *Enricher) enrich(r *http.Request, cfg Config) Result {
	ctx := r.Context()

	locale, ok := i18n.LocaleFromContext(ctx)
	if !ok || locale == "" {
		locale = i18n.DefaultLanguage
	}

	key := e.keys.Generate(cfg)
	ns := cfg.Mode.Namespace()

	header := lookupMessage(e.catalog, key, ns, HeaderLocale)
	body := lookupMessage(e.catalog, key, ns, locale)

	if cfg.PlaceholderEnabled && len(cfg.PlaceholderMapping) > 0 {
		header = e.engine.Substitute(header, cfg.PlaceholderMapping, r)
		body = e.engine.Substitute(body, cfg.PlaceholderMapping, r)
	}

	// The game only appends to the body; without a published body a round
	// would advance unseen.
	if cfg.GameEnabled && cfg.IncludeInResponse {
		in := game.Input{Header: r.Header, Locale: locale, Range: cfg.GameRange}
		if sess, ok := session.FromContext(ctx); ok {
			in.Session = sess
		} else {
			e.logger.DebugContext(ctx, "no session for game", slog.String("game", string(cfg.GameType)))
		}
		body = e.games.Play(cfg.GameType, in, body)
	}

	res := Result{Key: key, Locale: locale}
	if cfg.IncludeHeader {
		res.Header = truncate(header, cfg.MaxFortuneLength)
	}
	if cfg.IncludeInResponse {
		res.Body = body
	}

	if cfg.Debug {
		e.logger.DebugContext(ctx, "fortune selected",
			logger.MessageKey(key),
			logger.Locale(locale),
			logger.Path(r.URL.Path),
			slog.String("header", res.Header),
			slog.String("body", res.Body),
		)
	}

	return res
}

// truncate keeps the first limit runes and appends Ellipsis. limit <= 0 disables it.
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + Ellipsis
}
