package kv

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is a volatile namespace. It backs the per-session draft storage
// and doubles as a test double for the durable namespace.
type MemoryStore struct {
	mu         sync.RWMutex
	entries    map[string]string
	usedBytes  int64
	quotaBytes int64
}

// NewMemoryStore returns an empty store. A quota of zero or less disables the
// limit.
func NewMemoryStore(quotaBytes int64) *MemoryStore {
	return &MemoryStore{
		entries:    make(map[string]string),
		quotaBytes: quotaBytes,
	}
}

func (store *MemoryStore) Get(key string) (string, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	value, ok := store.entries[key]
	return value, ok, nil
}

func (store *MemoryStore) Set(key string, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	nextUsed := store.usedBytes + EntrySize(key, value)
	if previous, ok := store.entries[key]; ok {
		nextUsed -= EntrySize(key, previous)
	}
	if store.quotaBytes > 0 && nextUsed > store.quotaBytes {
		return fmt.Errorf("set %s: %w", key, ErrQuotaExceeded)
	}

	store.entries[key] = value
	store.usedBytes = nextUsed
	return nil
}

func (store *MemoryStore) Remove(key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if previous, ok := store.entries[key]; ok {
		store.usedBytes -= EntrySize(key, previous)
		delete(store.entries, key)
	}
	return nil
}

func (store *MemoryStore) UsedBytes() int64 {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.usedBytes
}

func (store *MemoryStore) Keys() []string {
	store.mu.RLock()
	defer store.mu.RUnlock()

	keys := make([]string, 0, len(store.entries))
	for key := range store.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
