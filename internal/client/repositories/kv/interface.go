// Package kv is the durable key/value table backing the client's local
// storage. Values are opaque bytes; callers own the encoding.
package kv

import (
	"context"
)

// Repository reads and writes single keys. Get returns (nil, nil) for a
// missing key. Each call is atomic on its own; group calls with dbx.WithTx.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
