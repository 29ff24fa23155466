package cache

import "time"

// Store is a small key-value cache with per-key expiration. MemoryStore
// implements it for development and tests; RedisStore for production.
type Store interface {
	Set(key string, value string, expiration time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
}
