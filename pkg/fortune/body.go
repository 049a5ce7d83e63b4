package fortune

import (
	"bytes"
	"context"
	"encoding/json"
	"maps"
	"mime"
	"net/http"
	"reflect"
	"strconv"

	"github.com/dmitrymomot/fortunecookie/handler"
	"github.com/dmitrymomot/fortunecookie/pkg/logger"
)

// Envelope wraps a payload that cannot carry the message field itself.
type Envelope struct {
	Data    any    `json:"data"`
	Fortune string `json:"fortune"`
}

// EnrichBody merges the pending body message into payload. Object payloads
// (any map with string keys) get a map[string]any copy with the response field added;
// nil becomes a one-field object; anything else is wrapped in an Envelope. It returns false and payload
// unchanged when there is nothing to publish or status is filtered out.
func EnrichBody(ctx context.Context, status int, payload any) (any, bool) {
	p, ok := pendingFromContext(ctx)
	if !ok || p.result.Body == "" || !p.enricher.StatusAllowed(status) {
		return payload, false
	}

	field := p.enricher.cfg.ResponseFortuneName
	switch v := payload.(type) {
	case nil:
		return map[string]any{field: p.result.Body}, true
	case map[string]any:
		out := maps.Clone(v)
		if out == nil {
			out = make(map[string]any, 1)
		}
		out[field] = p.result.Body
		return out, true
	default:
		if out, ok := objectCopy(payload); ok {
			out[field] = p.result.Body
			return out, true
		}
		return Envelope{Data: payload, Fortune: p.result.Body}, true
	}
}

// objectCopy copies a map with string-kinded keys into a map[string]any.
func objectCopy(payload any) (map[string]any, bool) {
	v := reflect.ValueOf(payload)
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, v.Len()+1)
	iter := v.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// Decorator is the body hook for typed handlers. Responses implementing
// handler.PayloadResponse get their payload enriched; others pass through.
func Decorator[C handler.Context, R any]() handler.Decorator[C, R] {
	return func(next handler.HandlerFunc[C, R]) handler.HandlerFunc[C, R] {
		return func(ctx C, req R) handler.Response {
			resp := next(ctx, req)
			pr, ok := resp.(handler.PayloadResponse)
			if !ok {
				return resp
			}
			payload, changed := EnrichBody(ctx, pr.Status(), pr.Payload())
			if !changed {
				return resp
			}
			return pr.WithPayload(payload)
		}
	}
}

// BufferedJSON is the body hook for plain handlers that encode JSON themselves.
// It buffers the response and, for application/json bodies, rewrites them through
// EnrichBody. Other responses, and bodies that fail to decode, are written unchanged.
// It must run inside Middleware.
func (e *Enricher) BufferedJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := pendingFromContext(r.Context()); !ok {
			next.ServeHTTP(w, r)
			return
		}

		bw := &bufferedWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(bw, r)

		body := bw.buf.Bytes()
		if isJSON(w.Header().Get("Content-Type")) && len(bytes.TrimSpace(body)) > 0 {
			if rewritten, ok := rewriteJSON(r.Context(), bw.status, body); ok {
				body = rewritten
			} else {
				e.logger.DebugContext(r.Context(), "json body left unchanged", logger.Path(r.URL.Path))
			}
		}

		if len(body) > 0 {
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		}
		w.WriteHeader(bw.status)
		_, _ = w.Write(body)
	})
}

func rewriteJSON(ctx context.Context, status int, body []byte) ([]byte, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, false
	}

	enriched, changed := EnrichBody(ctx, status, payload)
	if !changed {
		return nil, false
	}

	out, err := json.Marshal(enriched)
	if err != nil {
		return nil, false
	}
	if bytes.HasSuffix(body, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, true
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/json"
}

type bufferedWriter struct {
	http.ResponseWriter
	buf         bytes.Buffer
	status      int
	wroteHeader bool
}

func (w *bufferedWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	if code >= http.StatusContinue && code < http.StatusOK {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	w.wroteHeader = true
	w.status = code
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.buf.Write(b)
}
