package storage

import "sync"

// MemoryStorage is an in-memory Storage, used in tests and as a harmless
// fallback when no cache directory is usable.
type MemoryStorage struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{m: make(map[string]string)}
}

// Get implements Storage.
func (ms *MemoryStorage) Get(key string) (string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	v, ok := ms.m[key]
	return v, ok
}

// Set implements Storage.
func (ms *MemoryStorage) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.m[key] = value
	return nil
}

// Remove implements Storage.
func (ms *MemoryStorage) Remove(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.m, key)
}

// Len reports the number of stored keys.
func (ms *MemoryStorage) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.m)
}
