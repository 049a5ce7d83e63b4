package i18n

import "errors"

var (
	ErrNilAdapter         = errors.New("i18n: adapter is nil")
	ErrEmptyLanguage      = errors.New("i18n: empty language code")
	ErrInvalidCatalog     = errors.New("i18n: invalid catalog structure")
	ErrLoadingCancelled   = errors.New("i18n: loading cancelled")
	ErrFailedToReadFile   = errors.New("i18n: failed to read translation file")
	ErrFailedToParseFile  = errors.New("i18n: failed to parse translation file")
	ErrNoTranslationFiles = errors.New("i18n: no translation files found")
	ErrFailedToParseYAML  = errors.New("i18n: failed to parse YAML content")
	ErrFailedToParseJSON  = errors.New("i18n: failed to parse JSON content")
	ErrFailedToQuery      = errors.New("i18n: failed to query translations")
	ErrInvalidTableName   = errors.New("i18n: invalid table name")
)
