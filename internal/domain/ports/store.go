package ports

import "context"

// KeyValueStore is a durable string store without expiry.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
