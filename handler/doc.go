// Package handler provides type-safe HTTP handlers with pluggable binders, decorators
// and JSON responses.
//
// A HandlerFunc receives a Context and a bound request value and returns a Response.
// Wrap turns it into an http.HandlerFunc, running binders (skipping those that report
// ErrBinderNotApplicable), applying decorators outermost-first and rendering the result.
//
//	type HelloRequest struct {
//		Name string `json:"name"`
//	}
//
//	func hello(ctx handler.Context, req HelloRequest) handler.Response {
//		return handler.JSON(map[string]any{"hello": req.Name})
//	}
//
//	r.Post("/hello", handler.Wrap(hello,
//		handler.WithBinders[handler.Context, HelloRequest](handler.BindJSON()),
//		handler.WithErrorHandler[handler.Context, HelloRequest](handler.NewJSONErrorHandler[handler.Context](log)),
//	))
//
// JSON responses implement PayloadResponse, so decorators can inspect and replace the
// payload before it is rendered.
package handler
