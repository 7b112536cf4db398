// Package client is the consumer-side companion to the HTTP API. It wraps
// the summarize endpoint with a result cache and a search history, both
// persisted through a pluggable key-value store.
package client

// Store is the persistence boundary for the cache and history collections.
// Each collection serializes itself into a single value under a fixed key.
type Store interface {
	// Get returns the value for key. The second return reports presence.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases the underlying resources.
	Close() error
}
