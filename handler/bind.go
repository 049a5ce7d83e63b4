package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

// maxJSONBodySize limits JSON request bodies.
const maxJSONBodySize = 1 << 20

// BindJSON decodes application/json request bodies. Requests with another content type
// or without a body are reported as ErrBinderNotApplicable.
func BindJSON() Bind {
	return func(r *http.Request, v any) error {
		if r.Body == nil || r.ContentLength == 0 {
			return ErrBinderNotApplicable
		}

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			return ErrBinderNotApplicable
		}

		dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodySize))
		if err := dec.Decode(v); err != nil {
			return errors.Join(ErrBadRequest, err)
		}
		return nil
	}
}
