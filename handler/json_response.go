package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// JSONResponse is the envelope every JSON endpoint writes.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail is the error section of the envelope.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// PayloadResponse is a Response whose payload can be inspected and replaced
// before rendering. Response decorators use it to enrich bodies.
type PayloadResponse interface {
	Response
	Payload() any
	WithPayload(payload any) Response
	Status() int
}

// JSONOption adjusts a JSON response before it is rendered.
type JSONOption func(*envelopeResponse)

// WithJSONStatus overrides the status code.
func WithJSONStatus(status int) JSONOption {
	return func(e *envelopeResponse) { e.status = status }
}

// WithJSONMeta sets the meta section.
func WithJSONMeta(meta map[string]any) JSONOption {
	return func(e *envelopeResponse) { e.env.Meta = meta }
}

type envelopeResponse struct {
	status int
	env    JSONResponse
}

func (e envelopeResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.status)
	return json.NewEncoder(w).Encode(e.env)
}

func (e envelopeResponse) Payload() any { return e.env.Data }

func (e envelopeResponse) WithPayload(payload any) Response {
	e.env.Data = payload
	return e
}

func (e envelopeResponse) Status() int { return e.status }

func (e envelopeResponse) with(opts []JSONOption) Response {
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// JSON wraps v in the envelope with status 200. A JSONResponse is used as is;
// an error or *ErrorDetail produces an error envelope with the matching status.
func JSON(v any, opts ...JSONOption) Response {
	switch val := v.(type) {
	case JSONResponse:
		return envelopeResponse{status: http.StatusOK, env: val}.with(opts)
	case *ErrorDetail:
		return envelopeResponse{status: http.StatusInternalServerError, env: JSONResponse{Error: val}}.with(opts)
	case error:
		return JSONError(val, opts...)
	}
	return envelopeResponse{status: http.StatusOK, env: JSONResponse{Data: v}}.with(opts)
}

// JSONError renders err as an error envelope.
func JSONError(err error, opts ...JSONOption) Response {
	status, detail := describe(err)
	return envelopeResponse{status: status, env: JSONResponse{Error: detail}}.with(opts)
}

// detailer is implemented by errors that know their own status and error body.
type detailer interface {
	detail() (int, *ErrorDetail)
}

func describe(err error) (int, *ErrorDetail) {
	var d detailer
	if errors.As(err, &d) {
		return d.detail()
	}
	return http.StatusInternalServerError, &ErrorDetail{Code: "internal_error", Message: err.Error()}
}
