package fortune

import (
	"context"
	"net/http"
)

// pending is the per-request handoff between the header hook and the body hooks.
type pending struct {
	enricher *Enricher
	result   Result
}

type pendingContextKey struct{}

func pendingFromContext(ctx context.Context) (*pending, bool) {
	p, ok := ctx.Value(pendingContextKey{}).(*pending)
	return p, ok && p != nil
}

// ResultFromContext returns the enrichment result of the current request.
func ResultFromContext(ctx context.Context) (Result, bool) {
	p, ok := pendingFromContext(ctx)
	if !ok {
		return Result{}, false
	}
	return p.result, true
}

// Middleware enriches marked requests. It must run after Mark: with chi, attach
// both per route through Route. The header is written when the response status is
// known and passes the status filters; the body message is left in the request
// context for EnrichBody, Decorator or BufferedJSON.
// A request is enriched at most once even if the middleware is stacked.
func (e *Enricher) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, done := pendingFromContext(r.Context()); done {
			next.ServeHTTP(w, r)
			return
		}

		res, ok := e.Enrich(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), pendingContextKey{}, &pending{enricher: e, result: res})
		r = r.WithContext(ctx)

		if res.Header == "" {
			next.ServeHTTP(w, r)
			return
		}

		hw := &headerWriter{ResponseWriter: w, enricher: e, value: res.Header}
		next.ServeHTTP(hw, r)
		if !hw.wroteHeader {
			hw.WriteHeader(http.StatusOK)
		}
	})
}

// Route marks the route with route and enriches it.
//
//	r.With(enricher.Route(fortune.Route{Mode: fortune.ModeJoke})).Get("/joke", h)
func (e *Enricher) Route(route Route) func(http.Handler) http.Handler {
	mark := Mark(route)
	return func(next http.Handler) http.Handler {
		return mark(e.Middleware(next))
	}
}

// headerWriter sets the message header right before the status line is written.
type headerWriter struct {
	http.ResponseWriter
	enricher    *Enricher
	value       string
	wroteHeader bool
}

func (w *headerWriter) WriteHeader(code int) {
	if w.wroteHeader {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	if code >= http.StatusContinue && code < http.StatusOK {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	w.wroteHeader = true
	if w.enricher.StatusAllowed(code) {
		w.Header().Set(w.enricher.cfg.HeaderName, w.value)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *headerWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *headerWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
