package xcontext

import "context"

var requestIDKey = key[string]{name: "request_id"}

func SetRequestID(ctx context.Context, requestID string) context.Context {
	return set(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) (string, bool) {
	return get(ctx, requestIDKey)
}
