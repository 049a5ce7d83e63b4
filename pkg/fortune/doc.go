// Package fortune attaches a generated, localized message to HTTP responses.
//
// # Pipeline
//
// For each marked request the Enricher:
//
//  1. skips unmarked routes, disabled enrichment and excluded paths before
//     drawing any random value;
//  2. merges the route overrides over the global Config;
//  3. picks a catalog key: the mode's special message with a 1% chance, then
//     the Monday or Friday message on those days, else a random numbered one;
//  4. looks the key up in English for the header and in the request locale for
//     the body, falling back to the namespace default and then FallbackMessage;
//  5. replaces {name} placeholders from request headers, session values or the
//     authenticated identity ("guest" when a value is missing);
//  6. appends the mini-game feedback to the body message when the game is on
//     and the body is published;
//  7. truncates the header message to MaxFortuneLength runes.
//
// # Routes
//
// Routes opt in with Mark or Enricher.Route. Route values layered by nested marks
// override the global Config field by field, innermost first:
//
//	r.Group(func(r chi.Router) {
//		r.Use(fortune.Mark(fortune.Route{Mode: fortune.ModeJoke}))
//		r.With(enricher.Route(fortune.Route{Game: game.TypeQuiz})).Get("/quiz", h)
//	})
//
// # Publishing
//
// The header is published by Middleware once the status is known, subject to
// IncludeOnError and IncludedStatusCodes. The body message is merged by one of the
// body hooks:
//
//   - Decorator for typed handlers returning handler.JSON;
//   - BufferedJSON for plain handlers that encode JSON themselves;
//   - EnrichBody for anything else.
//
// Maps with string keys gain the ResponseFortuneName field; other payloads are
// wrapped in an Envelope of {data, fortune}.
//
//	catalog, err := fortune.NewDefaultCatalog(ctx, nil)
//	enricher, err := fortune.New(cfg, catalog, fortune.WithLogger(log))
//
//	r.With(enricher.Route(fortune.Route{Mode: fortune.ModeJoke}), enricher.BufferedJSON).
//		Get("/joke", jokeHandler)
//
// # Configuration
//
// Config fields are read with the FORTUNE_ prefix, for example FORTUNE_MODE=joke,
// FORTUNE_EXCLUDE_PATTERNS=/health.*,/metrics, FORTUNE_PLACEHOLDER_ENABLED=true and
// FORTUNE_PLACEHOLDER_MAPPING=userName=header:X-User-Name. The same fields decode
// from YAML.
//
// Enrichment never fails a request: catalog misses fall back to the namespace default
// and then to FallbackMessage, malformed placeholder sources resolve to the guest
// value, and resolver or game failures leave the message as is.
package fortune
