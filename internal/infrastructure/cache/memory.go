package cache

import (
	"sync"
	"time"
)

// MemoryStore is the in-process Store used when Redis is disabled. It backs
// the engagement leaderboard cache and the OAuth state store in
// single-instance deployments; entries vanish on restart, which both
// callers tolerate.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
}

type memoryItem struct {
	value     string
	expiresAt time.Time
}

// NewMemoryStore creates a memory store and starts its expiry janitor
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
	}
	go store.janitor()
	return store
}

// Set stores a key with an expiration window
func (ms *MemoryStore) Set(key string, value string, expiration time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = &memoryItem{
		value:     value,
		expiresAt: time.Now().Add(expiration),
	}
}

// Get retrieves a value; expired entries read as missing even before the
// janitor removes them
func (ms *MemoryStore) Get(key string) (string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists || time.Now().After(item.expiresAt) {
		return "", false
	}
	return item.value, true
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
}

// janitor periodically drops expired entries so abandoned OAuth states and
// stale leaderboard snapshots do not accumulate
func (ms *MemoryStore) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := time.Now()
		for key, item := range ms.items {
			if now.After(item.expiresAt) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
