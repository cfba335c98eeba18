package handler

import "net/http"

// HandlerFunc handles a request already decoded into R.
//
//	send := func(ctx handler.Context, body SendBody) handler.Response {
//		res, err := svc.Send(ctx, body.Request())
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.OK(res)
//	}
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind decodes a request into v.
type Bind func(r *http.Request, v any) error

// ErrorHandler owns the response when binding or rendering fails.
type ErrorHandler func(ctx Context, err error)

// Decorator wraps a HandlerFunc. The first one given to Wrap runs first.
type Decorator[R any] func(HandlerFunc[R]) HandlerFunc[R]

// Option configures a route built by Wrap.
type Option[R any] func(*route[R])

type route[R any] struct {
	bind       Bind
	onError    ErrorHandler
	decorators []Decorator[R]
}

// WithBinder sets the request decoder. Without one R stays zero.
func WithBinder[R any](b Bind) Option[R] {
	return func(rt *route[R]) { rt.bind = b }
}

// WithErrorHandler replaces the default, which renders Error(err).
func WithErrorHandler[R any](h ErrorHandler) Option[R] {
	return func(rt *route[R]) {
		if h != nil {
			rt.onError = h
		}
	}
}

// WithDecorators appends decorators around the handler.
func WithDecorators[R any](d ...Decorator[R]) Option[R] {
	return func(rt *route[R]) { rt.decorators = append(rt.decorators, d...) }
}

func renderError(ctx Context, err error) {
	_ = Error(err).Render(ctx.ResponseWriter(), ctx.Request())
}

// Wrap converts h into an http.HandlerFunc.
//
//	r.Post("/api/email/send", handler.Wrap(send,
//		handler.WithBinder[SendBody](binder.JSON()),
//		handler.WithErrorHandler[SendBody](handler.NewErrorHandler(log)),
//	))
func Wrap[R any](h HandlerFunc[R], opts ...Option[R]) http.HandlerFunc {
	rt := &route[R]{onError: renderError}
	for _, opt := range opts {
		opt(rt)
	}
	for i := len(rt.decorators) - 1; i >= 0; i-- {
		h = rt.decorators[i](h)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		if rt.bind != nil {
			if err := rt.bind(r, &req); err != nil {
				rt.onError(ctx, err)
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			rt.onError(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			rt.onError(ctx, err)
		}
	}
}
