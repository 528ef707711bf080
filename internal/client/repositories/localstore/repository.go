// Package localstore is the client's persistent key/value storage, the
// equivalent of a browser's origin-scoped local storage. Values are opaque
// bytes, usually JSON documents owned by one component per key.
package localstore

import "context"

// Repository is a flat key/value store.
//
// Get returns (nil, nil) when the key is absent. Delete ignores keys that do
// not exist, so clearing is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}
