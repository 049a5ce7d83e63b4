package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator resolves localized strings loaded through a TranslationAdapter.
// It is safe for concurrent use; Reload swaps the catalog atomically.
type Translator struct {
	mu           sync.RWMutex
	translations map[string]map[string]any
	adapter      TranslationAdapter
	defaultLang  string
	logMissing   bool
	logger       *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used by Tc when the context carries none.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = strings.ToLower(lang)
		}
	}
}

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMissingTranslationsLogging logs lookups that miss at debug level.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) {
		t.logMissing = enabled
	}
}

// NewTranslator loads the catalog from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		adapter:     adapter,
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}

	return t, nil
}

// Reload fetches the catalog from the adapter again and replaces the current one.
func (t *Translator) Reload(ctx context.Context) error {
	raw, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}

	translations := make(map[string]map[string]any, len(raw))
	for lang, entries := range raw {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			return ErrEmptyLanguage
		}
		if entries == nil {
			return fmt.Errorf("%w: nil entries for %q", ErrInvalidCatalog, lang)
		}
		translations[lang] = entries
	}

	t.mu.Lock()
	t.translations = translations
	t.mu.Unlock()

	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.SupportedLanguages()))
	return nil
}

// SupportedLanguages returns the loaded language codes in sorted order.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Lookup returns the raw string stored under key for lang.
// Region-qualified locales fall back to their base language ("ko-KR" -> "ko").
// Keys are matched literally first, then as dot-separated paths into nested maps.
func (t *Translator) Lookup(key, lang string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, candidate := range languageCandidates(lang) {
		entries, ok := t.translations[candidate]
		if !ok {
			continue
		}
		if s, ok := lookupString(entries, key); ok {
			return s, true
		}
	}

	if t.logMissing {
		t.logger.Debug("translation not found", slog.String("lang", lang), slog.String("key", key))
	}
	return "", false
}

// HasTranslation reports whether key resolves for lang.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := t.Lookup(key, lang)
	return ok
}

// T translates key, substituting %{name} parameters given as name/value pairs.
// Missing keys return the key itself.
func (t *Translator) T(lang, key string, args ...string) string {
	return t.Td(lang, key, key, args...)
}

// Td translates key, using defaultValue when the key is missing.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	s, ok := t.Lookup(key, lang)
	if !ok {
		s = defaultValue
	}
	return Format(s, args...)
}

// Tc translates key in the locale carried by ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	lang, ok := LocaleFromContext(ctx)
	if !ok {
		lang = t.defaultLang
	}
	return t.T(lang, key, args...)
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Format replaces %{name} parameters in tmpl. Args are name/value pairs;
// an odd trailing name is ignored and unknown parameters are left in place.
func Format(tmpl string, args ...string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}

	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}

	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// languageCandidates lists the catalog languages to try for lang, most specific first.
func languageCandidates(lang string) []string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return nil
	}

	candidates := []string{lang}

	tag, err := language.Parse(lang)
	if err != nil {
		return candidates
	}

	if canonical := strings.ToLower(tag.String()); canonical != lang {
		candidates = append(candidates, canonical)
	}

	if base, conf := tag.Base(); conf != language.No {
		if b := base.String(); b != lang {
			candidates = append(candidates, b)
		}
	}

	return candidates
}

func lookupString(entries map[string]any, key string) (string, bool) {
	if v, ok := entries[key]; ok {
		s, ok := v.(string)
		return s, ok
	}

	current := entries
	parts := strings.Split(key, ".")
	for i, part := range parts {
		next, ok := current[part]
		if !ok {
			// Allow mixed forms like "fortune.joke" -> {"1": ...} where the remainder is a flat key.
			rest := strings.Join(parts[i:], ".")
			if v, ok := current[rest]; ok && i > 0 {
				s, ok := v.(string)
				return s, ok
			}
			return "", false
		}

		if i == len(parts)-1 {
			s, ok := next.(string)
			return s, ok
		}

		m, ok := next.(map[string]any)
		if !ok {
			return "", false
		}
		current = m
	}

	return "", false
}
