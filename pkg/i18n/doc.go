// Package i18n loads localized message catalogs and negotiates the request locale.
//
// # Catalogs
//
// A Translator holds catalogs keyed by language code. Catalog entries may be flat
// ("fortune.1": "...") or nested maps addressed with dotted keys; both forms are resolved
// by Lookup, which also falls back from a regional locale to its base language
// ("ko-KR" reads "ko").
//
// Catalogs come from a TranslationAdapter:
//
//   - MapAdapter: an in-memory map, mostly for tests.
//   - FileAdapter: one YAML or JSON file, decoded by a Parser.
//   - FSAdapter and NewDirectoryAdapter: every *.yaml, *.yml and *.json file in an
//     embedded or on-disk directory; ParserFor picks the parser by extension.
//   - PostgresAdapter: rows of (lang, key, value) from a translations table.
//   - MultiAdapter: several adapters merged in order, later ones winning per key.
//
// Files have the language as the top-level key:
//
//	en:
//	  fortune:
//	    "1": "Your hard work is about to pay off."
//	  game:
//	    guess_prompt: "Guess a number between 1 and %{range}!"
//
// Reload fetches the catalog again and swaps it atomically, so a Translator can be
// refreshed while requests are served.
//
// # Translation
//
// T and Td substitute %{name} parameters given as name/value pairs; Td takes a
// default for missing keys and Tc reads the language from the context.
// WithMissingTranslationsLogging logs every miss at debug level, which helps when
// filling a new locale.
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales, "locales"),
//		i18n.WithLogger(log),
//		i18n.WithMissingTranslationsLogging(true),
//	)
//	msg, ok := tr.Lookup("fortune.3", i18n.GetLocale(r.Context()))
//	prompt := tr.T("ko", "game.guess_prompt", "range", "10")
//
// # Locale negotiation
//
// Middleware stores the negotiated request locale in the context and sets the
// Content-Language response header. DefaultLangExtractor tries the "lang" cookie,
// the "lang" query parameter and the Language header, accepting only supported
// languages, then negotiates Accept-Language with golang.org/x/text/language.
// The result defaults to "en".
//
//	r.Use(i18n.Middleware(i18n.DefaultLangExtractor(
//		i18n.WithSupportedLanguages(tr.SupportedLanguages()...),
//	)))
//
// FirstSupported composes custom extractors (FromCookie, FromQuery, FromHeader).
package i18n
