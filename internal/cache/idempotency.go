// Package cache holds the in-process idempotency cache used to replay
// duplicate money-movement requests instead of executing them twice.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IdempotencyEntry is a captured response for one (key, session) pair.
type IdempotencyEntry struct {
	Key          string
	SessionID    uuid.UUID
	RequestHash  string
	StatusCode   int
	ResponseBody []byte
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

type entryKey struct {
	key       string
	sessionID uuid.UUID
}

// IdempotencyCache keeps replay entries in memory with a TTL. Expired entries
// are dropped lazily on lookup and swept on write, so the map cannot grow
// unbounded while the process runs.
type IdempotencyCache struct {
	mu      sync.Mutex
	entries map[entryKey]*IdempotencyEntry
}

func NewIdempotencyCache() *IdempotencyCache {
	return &IdempotencyCache{entries: make(map[entryKey]*IdempotencyEntry)}
}

// Get returns the entry for the key within the caller's session, or nil when
// absent or expired. The context is accepted for interface symmetry with
// backed stores; the lookup itself cannot fail.
func (c *IdempotencyCache) Get(_ context.Context, key string, sessionID uuid.UUID) (*IdempotencyEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := entryKey{key: key, sessionID: sessionID}
	e, ok := c.entries[k]
	if !ok {
		return nil, nil
	}
	if time.Now().After(e.ExpiresAt) {
		delete(c.entries, k)
		return nil, nil
	}
	return e, nil
}

func (c *IdempotencyCache) Set(_ context.Context, entry *IdempotencyEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.ExpiresAt) {
			delete(c.entries, k)
		}
	}

	c.entries[entryKey{key: entry.Key, sessionID: entry.SessionID}] = entry
	return nil
}

// DeleteSession drops all entries for a session, called at logout.
func (c *IdempotencyCache) DeleteSession(sessionID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.entries {
		if k.sessionID == sessionID {
			delete(c.entries, k)
		}
	}
}

func (c *IdempotencyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
