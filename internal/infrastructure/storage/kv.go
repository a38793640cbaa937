// internal/infrastructure/storage/kv.go
package storage

import "context"

// KV is the persistence contract the storefront needs: whole-value string
// storage for serialized carts and one-time choices. Implementations must
// tolerate absent keys (first run); callers treat corrupt values as empty.
type KV interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
