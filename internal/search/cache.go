package search

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"sync"
	"time"
)

// CachedProvider provides simple in-memory caching for search results
type CachedProvider struct {
	next Provider

	mu      sync.RWMutex
	entries map[string]*CacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type CacheEntry struct {
	Results   []CandidateResult
	Timestamp time.Time
}

// NewCachedProvider wraps next with a cache of the given TTL
func NewCachedProvider(next Provider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		next:    next,
		entries: make(map[string]*CacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *CachedProvider) Search(ctx context.Context, query string) ([]CandidateResult, error) {
	q, err := NormalizeQuery(query)
	if err != nil {
		return nil, err
	}

	ws := WorkspaceFrom(ctx)
	if results, ok := c.Get(ws, q); ok {
		return results, nil
	}

	results, err := c.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	c.Set(ws, q, results)
	return results, nil
}

// Get retrieves cached results for a workspace if available and not expired
func (c *CachedProvider) Get(workspaceID, query string) ([]CandidateResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[c.generateKey(workspaceID, query)]
	if !exists {
		return nil, false
	}
	if c.now().Sub(entry.Timestamp) > c.ttl {
		return nil, false
	}

	out := make([]CandidateResult, len(entry.Results))
	copy(out, entry.Results)
	return out, true
}

// Set stores results in cache
func (c *CachedProvider) Set(workspaceID, query string, results []CandidateResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]CandidateResult, len(results))
	copy(stored, results)
	c.entries[c.generateKey(workspaceID, query)] = &CacheEntry{
		Results:   stored,
		Timestamp: c.now(),
	}
}

// Clear removes all cache entries
func (c *CachedProvider) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*CacheEntry)
}

// CleanExpired removes expired entries and reports how many were dropped.
func (c *CachedProvider) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if now.Sub(entry.Timestamp) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries, expired ones included.
func (c *CachedProvider) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// generateKey is case and whitespace insensitive in the query
func (c *CachedProvider) generateKey(workspaceID, query string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	hash := md5.Sum([]byte(workspaceID + "\x00" + normalized))
	return fmt.Sprintf("%x", hash)
}
