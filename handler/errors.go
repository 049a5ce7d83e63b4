package handler

import (
	"errors"
	"maps"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

var (
	// ErrNilResponse is returned when a handler produces no Response.
	ErrNilResponse = errors.New("handler returned nil response")

	// ErrBinderNotApplicable lets a binder decline a request; Wrap moves on to the next one.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)

// HTTPError pairs a status code with a stable error key for clients.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

func (e HTTPError) detail() (int, *ErrorDetail) {
	return e.Code, &ErrorDetail{Code: e.Key, Message: http.StatusText(e.Code)}
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest          = NewHTTPError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized        = NewHTTPError(http.StatusUnauthorized, "unauthorized")
	ErrNotFound            = NewHTTPError(http.StatusNotFound, "not_found")
	ErrUnsupportedMedia    = NewHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "internal_server_error")
)

// ValidationError collects messages per input field. It renders as 422.
type ValidationError url.Values

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() ValidationError {
	return ValidationError{}
}

// Add records message for field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// IsEmpty reports whether nothing was recorded.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// Error lists the first message of every field in field order.
func (e ValidationError) Error() string {
	if e.IsEmpty() {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation error: ")
	sep := ""
	for _, field := range fields {
		if msgs := e[field]; len(msgs) > 0 {
			b.WriteString(sep + field + ": " + msgs[0])
			sep = ", "
		}
	}
	return b.String()
}

func (e ValidationError) detail() (int, *ErrorDetail) {
	d := &ErrorDetail{Code: "validation_error", Message: e.Error()}
	if !e.IsEmpty() {
		d.Details = maps.Clone(map[string][]string(e))
	}
	return http.StatusUnprocessableEntity, d
}
