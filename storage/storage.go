// Package storage provides the synchronous string key-value store the cache
// and quota layers persist into. It mirrors the per-origin storage the
// browser client used: get/set/remove, string keys, string values.
package storage

// Storage is a synchronous string-keyed key-value store.
type Storage interface {
	// Get returns the stored value and true, or "" and false on a miss.
	Get(key string) (string, bool)

	// Set stores the value under key, overwriting any previous value.
	// It may fail when the backing medium is full or unwritable.
	Set(key, value string) error

	// Remove deletes the key. Removing an absent key is a no-op.
	Remove(key string)
}
