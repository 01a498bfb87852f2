package xcontext

import "context"

var storeDriverKey = key[string]{name: "store_driver"}

// SetStoreDriver records which storage backend serves the request.
func SetStoreDriver(ctx context.Context, driver string) context.Context {
	return set(ctx, storeDriverKey, driver)
}

func GetStoreDriver(ctx context.Context) (string, bool) {
	return get(ctx, storeDriverKey)
}
