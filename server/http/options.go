package http

import (
	"context"
	"net/http"

	"github.com/recapkit/recap/server"
)

type middlewareKey struct{}

func WithMiddleware(ms ...func(next http.Handler) http.Handler) server.Option {
	return func(o *server.Options) {
		o.Context = context.WithValue(o.Context, middlewareKey{}, ms)
	}
}

func MiddlewareFrom(ctx context.Context) ([]func(next http.Handler) http.Handler, bool) {
	ms, ok := ctx.Value(middlewareKey{}).([]func(next http.Handler) http.Handler)
	return ms, ok
}
