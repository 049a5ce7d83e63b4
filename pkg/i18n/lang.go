package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is the default language code used when no language is detected
const DefaultLanguage = "en"

// maxAcceptLanguageLength bounds the Accept-Language header we are willing to parse.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage negotiates the best supported language for an Accept-Language header.
// Region variants match their base language ("ko-KR" selects "ko").
// Returns defaultLang when nothing matches.
func ParseAcceptLanguage(header string, supportedLangs []string, defaultLang string) string {
	if header == "" || len(supportedLangs) == 0 {
		return defaultLang
	}

	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return defaultLang
	}

	supported := make([]language.Tag, 0, len(supportedLangs))
	names := make([]string, 0, len(supportedLangs))
	for _, s := range supportedLangs {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		names = append(names, strings.ToLower(s))
	}
	if len(supported) == 0 {
		return defaultLang
	}

	_, idx, conf := language.NewMatcher(supported).Match(desired...)
	if conf == language.No {
		return defaultLang
	}
	return names[idx]
}

// preferredLanguage returns the highest weighted tag of an Accept-Language header.
func preferredLanguage(header string) string {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}
	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return ""
	}
	return strings.ToLower(desired[0].String())
}
