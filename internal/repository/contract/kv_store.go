package contract

import "context"

// KeyValueStore is the simple string-keyed fallback tier. Every dataset is
// mirrored here as a JSON blob; it is also the migration source when the
// structured tier starts out empty.
type KeyValueStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
