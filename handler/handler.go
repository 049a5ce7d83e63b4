package handler

import (
	"errors"
	"net/http"
)

// HandlerFunc handles a bound request value and returns the Response to render.
type HandlerFunc[C Context, R any] func(ctx C, req R) Response

// Response renders itself to w.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ResponseFunc adapts a plain function to Response.
type ResponseFunc func(w http.ResponseWriter, r *http.Request) error

// Render implements Response.
func (f ResponseFunc) Render(w http.ResponseWriter, r *http.Request) error { return f(w, r) }

// Empty is a 204 No Content response.
func Empty() Response {
	return EmptyWithStatus(http.StatusNoContent)
}

// EmptyWithStatus is a body-less response with status.
func EmptyWithStatus(status int) Response {
	return ResponseFunc(func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(status)
		return nil
	})
}

// Bind fills v from r. Binders that cannot handle r return ErrBinderNotApplicable.
type Bind func(r *http.Request, v any) error

// ErrorHandler renders binding and rendering failures.
type ErrorHandler[C Context] func(ctx C, err error)

// Decorator wraps a HandlerFunc. In a list, the first decorator is the outermost.
type Decorator[C Context, R any] func(HandlerFunc[C, R]) HandlerFunc[C, R]

// WrapOption configures Wrap.
type WrapOption[C Context, R any] func(*wrapper[C, R])

type wrapper[C Context, R any] struct {
	binders    []Bind
	onError    ErrorHandler[C]
	newContext func(http.ResponseWriter, *http.Request) C
	decorators []Decorator[C, R]
}

// WithBinders appends binders; they run in order and all applicable ones apply.
func WithBinders[C Context, R any](binders ...Bind) WrapOption[C, R] {
	return func(w *wrapper[C, R]) {
		w.binders = append(w.binders, binders...)
	}
}

// WithErrorHandler replaces the plain-text error handler.
func WithErrorHandler[C Context, R any](h ErrorHandler[C]) WrapOption[C, R] {
	return func(w *wrapper[C, R]) {
		if h != nil {
			w.onError = h
		}
	}
}

// WithContextFactory is required when C is not handler.Context.
func WithContextFactory[C Context, R any](f func(http.ResponseWriter, *http.Request) C) WrapOption[C, R] {
	return func(w *wrapper[C, R]) {
		if f != nil {
			w.newContext = f
		}
	}
}

// WithDecorators appends decorators.
func WithDecorators[C Context, R any](decorators ...Decorator[C, R]) WrapOption[C, R] {
	return func(w *wrapper[C, R]) {
		w.decorators = append(w.decorators, decorators...)
	}
}

// Wrap converts h into an http.HandlerFunc: build the context, bind, call the
// decorated handler, render. A nil Response is reported as ErrNilResponse.
//
//	r.Get("/fortune", handler.Wrap(h,
//		handler.WithDecorators(fortune.Decorator[handler.Context, Req]()),
//	))
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	wr := &wrapper[C, R]{
		onError:    plainError[C],
		newContext: defaultContext[C],
	}
	for _, opt := range opts {
		opt(wr)
	}

	for i := len(wr.decorators) - 1; i >= 0; i-- {
		h = wr.decorators[i](h)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := wr.newContext(w, r)

		req, err := wr.bind(r)
		if err != nil {
			wr.onError(ctx, err)
			return
		}

		resp := h(ctx, req)
		if resp == nil {
			wr.onError(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			wr.onError(ctx, err)
		}
	}
}

func (wr *wrapper[C, R]) bind(r *http.Request) (R, error) {
	var req R
	for _, b := range wr.binders {
		if err := b(r, &req); err != nil && !errors.Is(err, ErrBinderNotApplicable) {
			return req, err
		}
	}
	return req, nil
}

func defaultContext[C Context](w http.ResponseWriter, r *http.Request) C {
	c, ok := NewContext(w, r).(C)
	if !ok {
		panic("handler: custom context type requires WithContextFactory")
	}
	return c
}

func plainError[C Context](ctx C, err error) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		http.Error(ctx.ResponseWriter(), httpErr.Key, httpErr.Code)
		return
	}
	http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
}
