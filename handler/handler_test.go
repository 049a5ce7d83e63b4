package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fortunecookie/handler"
)

type greetRequest struct {
	Name string `json:"name"`
}

func TestWrap_BindsJSONAndRenders(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(
		func(ctx handler.Context, req greetRequest) handler.Response {
			return handler.JSON(map[string]any{"hello": req.Name})
		},
		handler.WithBinders[handler.Context, greetRequest](handler.BindJSON()),
	)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"bob"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"hello":"bob"}}`, rec.Body.String())
}

func TestWrap_SkipsInapplicableBinder(t *testing.T) {
	t.Parallel()

	var got greetRequest
	h := handler.Wrap(
		func(ctx handler.Context, req greetRequest) handler.Response {
			got = req
			return handler.Empty()
		},
		handler.WithBinders[handler.Context, greetRequest](handler.BindJSON()),
	)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=bob"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, got.Name)
}

func TestWrap_BindErrorUsesErrorHandler(t *testing.T) {
	t.Parallel()

	var handled error
	h := handler.Wrap(
		func(ctx handler.Context, req greetRequest) handler.Response {
			t.Fatal("handler must not run")
			return nil
		},
		handler.WithBinders[handler.Context, greetRequest](handler.BindJSON()),
		handler.WithErrorHandler[handler.Context, greetRequest](func(ctx handler.Context, err error) {
			handled = err
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{broken`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.ErrorIs(t, handled, handler.ErrBadRequest)
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response { return nil })

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), handler.ErrNilResponse.Error())
}

func TestWrap_DefaultErrorHandlerHTTPError(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		return failingResponse{err: handler.ErrNotFound}
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestWrap_DecoratorOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) handler.Decorator[handler.Context, struct{}] {
		return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
			return func(ctx handler.Context, req struct{}) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(
		func(ctx handler.Context, _ struct{}) handler.Response {
			order = append(order, "handler")
			return handler.Empty()
		},
		handler.WithDecorators(mark("outer"), mark("inner")),
	)

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestContext_DelegatesToRequest(t *testing.T) {
	t.Parallel()

	type key struct{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), key{}, "v"))
	rec := httptest.NewRecorder()

	ctx := handler.NewContext(rec, req)
	assert.Equal(t, "v", ctx.Value(key{}))
	assert.Same(t, req, ctx.Request())
	require.NoError(t, ctx.Err())
}

type failingResponse struct {
	err error
}

func (f failingResponse) Render(http.ResponseWriter, *http.Request) error {
	return f.err
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	ve := handler.NewValidationError()
	assert.True(t, ve.IsEmpty())
	assert.Equal(t, "validation failed", ve.Error())

	ve.Add("name", "required")
	assert.False(t, ve.IsEmpty())
	assert.Equal(t, "validation error: name: required", ve.Error())

	var target handler.ValidationError
	assert.True(t, errors.As(error(ve), &target))
}
