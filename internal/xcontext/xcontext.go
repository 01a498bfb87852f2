// Package xcontext holds typed request-scoped values.
package xcontext

import "context"

type key[T any] struct{ name string }

func set[T any](ctx context.Context, k key[T], v T) context.Context {
	return context.WithValue(ctx, k, v)
}

func get[T any](ctx context.Context, k key[T]) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}
