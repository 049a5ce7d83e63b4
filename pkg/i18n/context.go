package i18n

import "context"

type localeKey struct{}

// SetLocale returns a copy of ctx carrying the request locale.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// LocaleFromContext reports the locale negotiated for the request.
func LocaleFromContext(ctx context.Context) (string, bool) {
	if l, ok := ctx.Value(localeKey{}).(string); ok && l != "" {
		return l, true
	}
	return "", false
}

// GetLocale is LocaleFromContext with DefaultLanguage as fallback.
func GetLocale(ctx context.Context) string {
	if l, ok := LocaleFromContext(ctx); ok {
		return l
	}
	return DefaultLanguage
}
