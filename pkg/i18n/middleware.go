package i18n

import "net/http"

// Middleware negotiates the request locale with extr (DefaultLangExtractor when
// nil), stores it in the context and announces it in Content-Language.
func Middleware(extr LangExtractor) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := extr(r)
			if locale == "" {
				locale = DefaultLanguage
			}
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), locale)))
		})
	}
}
