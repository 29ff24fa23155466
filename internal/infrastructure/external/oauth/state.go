package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/classpulse/backend/internal/infrastructure/cache"
)

// StateStore manages OAuth state tokens for CSRF protection
type StateStore interface {
	// Generate creates and stores a one-time state token
	Generate(ctx context.Context) (string, error)
	// Consume validates and invalidates a state token (one-time use)
	Consume(ctx context.Context, state string) bool
}

// StateManager implements StateStore over a cache.Store, so states survive
// across instances when backed by Redis and fall back to process memory in
// development.
type StateManager struct {
	store      cache.Store
	expiration time.Duration
}

// NewStateManager creates a new state manager
func NewStateManager(store cache.Store) *StateManager {
	return &StateManager{
		store:      store,
		expiration: 15 * time.Minute,
	}
}

// Generate generates a random state token and stores it
func (sm *StateManager) Generate(ctx context.Context) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	state := base64.URLEncoding.EncodeToString(b)
	sm.store.Set(stateKey(state), "valid", sm.expiration)
	return state, nil
}

// Consume validates a state token and deletes it immediately
func (sm *StateManager) Consume(ctx context.Context, state string) bool {
	key := stateKey(state)
	value, exists := sm.store.Get(key)
	if !exists || value != "valid" {
		return false
	}
	sm.store.Delete(key)
	return true
}

func stateKey(state string) string {
	return fmt.Sprintf("oauth:state:%s", state)
}
