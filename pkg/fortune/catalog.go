package fortune

import (
	"context"
	"embed"
	"errors"

	"github.com/dmitrymomot/fortunecookie/pkg/i18n"
)

// FallbackMessage is used when neither the key nor its namespace default exists.
const FallbackMessage = "Your fortune is still being baked. Try again later!"

// HeaderLocale is the locale of the header message. Header values stay ASCII.
const HeaderLocale = "en"

// Catalog looks up a localized message. *i18n.Translator satisfies it.
type Catalog interface {
	Lookup(key, locale string) (string, bool)
}

// CatalogFunc adapts a function to Catalog.
type CatalogFunc func(key, locale string) (string, bool)

// Lookup implements Catalog.
func (f CatalogFunc) Lookup(key, locale string) (string, bool) {
	return f(key, locale)
}

//go:embed locales/*.yaml
var locales embed.FS

// DefaultCatalogAdapter serves the embedded English and Korean messages.
func DefaultCatalogAdapter() i18n.TranslationAdapter {
	return i18n.NewFSAdapter(locales, "locales")
}

// NewDefaultCatalog loads the embedded messages, overlaid by extra adapters in order.
// opts are passed to the translator, e.g. i18n.WithMissingTranslationsLogging for
// debugging catalog gaps.
func NewDefaultCatalog(ctx context.Context, extra []i18n.TranslationAdapter, opts ...i18n.Option) (*i18n.Translator, error) {
	adapter := i18n.MultiAdapter(append([]i18n.TranslationAdapter{DefaultCatalogAdapter()}, extra...))
	opts = append([]i18n.Option{i18n.WithDefaultLanguage(i18n.DefaultLanguage)}, opts...)
	tr, err := i18n.NewTranslator(ctx, adapter, opts...)
	if err != nil {
		return nil, errors.Join(ErrLoadingCatalog, err)
	}
	return tr, nil
}

// lookupMessage resolves key for locale, trying in order: key in locale, key in
// HeaderLocale, the namespace default in locale and in HeaderLocale, FallbackMessage.
// A result equal to the key counts as missing.
func lookupMessage(c Catalog, key, namespace, locale string) string {
	locales := []string{locale}
	if locale != HeaderLocale {
		locales = append(locales, HeaderLocale)
	}

	for _, k := range []string{key, namespace + ".default"} {
		for _, l := range locales {
			if text, ok := safeLookup(c, k, l); ok && text != "" && text != k {
				return text
			}
		}
	}
	return FallbackMessage
}

func safeLookup(c Catalog, key, locale string) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			text, ok = "", false
		}
	}()
	return c.Lookup(key, locale)
}
