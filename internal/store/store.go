// Package store provides the key-value persistence capability backing the
// assistant's serialized settings blobs.
package store

import "context"

// KV persists opaque string values by key. Absence of a key is reported
// through the boolean, not an error.
type KV interface {
	// Get retrieves the value for key; found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying resources.
	Close() error
}
