package corpus

import (
	"context"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Cache stores parsed corpora keyed by a digest of their source text, so a
// changed file always misses.
type Cache interface {
	Get(ctx context.Context, key string) (Corpus, bool)
	Set(ctx context.Context, key string, c Corpus)
}

// Key returns the cache key for a corpus source text.
func Key(text string) string {
	sum := blake2b.Sum256([]byte(text))
	return "corpus:" + hex.EncodeToString(sum[:])
}

// MemoryCache keeps parsed corpora in process memory.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Corpus
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Corpus)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (Corpus, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.entries[key]
	return c, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, c Corpus) {
	m.mu.Lock()
	m.entries[key] = c
	m.mu.Unlock()
}

// Delete drops one entry.
func (m *MemoryCache) Delete(_ context.Context, key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Len returns the number of cached corpora.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// evicter is implemented by caches that can drop superseded entries.
// Remote caches rely on their TTL instead.
type evicter interface {
	Delete(ctx context.Context, key string)
}

// JSONStore is a remote key/value backend that stores values as JSON.
type JSONStore interface {
	GetJSON(ctx context.Context, key string, v any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

// StoreCache adapts a JSONStore to Cache. Backend errors are logged and
// treated as misses.
type StoreCache struct {
	store JSONStore
	ttl   time.Duration
}

func NewStoreCache(store JSONStore, ttl time.Duration) *StoreCache {
	return &StoreCache{store: store, ttl: ttl}
}

func (s *StoreCache) Get(ctx context.Context, key string) (Corpus, bool) {
	var c Corpus
	found, err := s.store.GetJSON(ctx, key, &c)
	if err != nil {
		slog.Warn("corpus cache read failed", "key", key, "error", err)
		return Corpus{}, false
	}
	if found && c.Records == nil {
		c.Records = []Record{}
	}
	return c, found
}

func (s *StoreCache) Set(ctx context.Context, key string, c Corpus) {
	if err := s.store.SetJSON(ctx, key, c, s.ttl); err != nil {
		slog.Warn("corpus cache write failed", "key", key, "error", err)
	}
}
