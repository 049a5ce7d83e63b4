package i18n

import (
	"net/http"
	"slices"
	"strings"
)

// LangExtractor returns the language a request asks for, or "" when it names none.
type LangExtractor func(r *http.Request) string

// RFC 5646 upper bound for a language tag.
const maxLangCodeLength = 35

// FromCookie reads the language from cookie name.
func FromCookie(name string) LangExtractor {
	return func(r *http.Request) string {
		if c, err := r.Cookie(name); err == nil {
			return c.Value
		}
		return ""
	}
}

// FromQuery reads the language from query parameter name.
func FromQuery(name string) LangExtractor {
	return func(r *http.Request) string {
		return r.URL.Query().Get(name)
	}
}

// FromHeader reads a single language code from header name.
func FromHeader(name string) LangExtractor {
	return func(r *http.Request) string {
		return r.Header.Get(name)
	}
}

// FirstSupported tries each source in order and returns the first value that,
// lowercased, is in supported or has its base language there ("ko-kr" -> "ko").
// An empty supported list accepts any well-formed value.
func FirstSupported(supported []string, sources ...LangExtractor) LangExtractor {
	langs := make([]string, len(supported))
	for i, l := range supported {
		langs[i] = strings.ToLower(l)
	}

	return func(r *http.Request) string {
		for _, src := range sources {
			if lang := match(langs, src(r)); lang != "" {
				return lang
			}
		}
		return ""
	}
}

func match(supported []string, lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || len(lang) > maxLangCodeLength {
		return ""
	}
	if len(supported) == 0 || slices.Contains(supported, lang) {
		return lang
	}
	if base, _, ok := strings.Cut(lang, "-"); ok && slices.Contains(supported, base) {
		return base
	}
	return ""
}

// ExtractorConfig configures DefaultLangExtractor.
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
	SupportedLangs []string
}

// ExtractorOption configures DefaultLangExtractor.
type ExtractorOption func(*ExtractorConfig)

// WithCookieName overrides the "lang" cookie name.
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// WithQueryParamName overrides the "lang" query parameter.
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// WithSupportedLanguages restricts results to langs.
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if len(langs) > 0 {
			c.SupportedLangs = langs
		}
	}
}

// DefaultLangExtractor checks the "lang" cookie, the "lang" query parameter and
// the Language header, then negotiates Accept-Language.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	cfg := ExtractorConfig{CookieName: "lang", QueryParamName: "lang"}
	for _, opt := range opts {
		opt(&cfg)
	}

	explicit := FirstSupported(cfg.SupportedLangs,
		FromCookie(cfg.CookieName),
		FromQuery(cfg.QueryParamName),
		FromHeader("Language"),
	)

	return func(r *http.Request) string {
		if lang := explicit(r); lang != "" {
			return lang
		}
		accept := r.Header.Get("Accept-Language")
		if accept == "" {
			return ""
		}
		if len(cfg.SupportedLangs) == 0 {
			return preferredLanguage(accept)
		}
		return ParseAcceptLanguage(accept, cfg.SupportedLangs, "")
	}
}
