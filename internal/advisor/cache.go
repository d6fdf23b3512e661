package advisor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Eviction policies accepted by NewResponseCache.
const (
	PolicyLRU = "lru"
	Policy2Q  = "2q"
)

// ResponseCache is a bounded store of provider replies keyed by prompt.
type ResponseCache interface {
	Get(key string) (string, bool)
	Add(key, value string)
	Len() int
}

type lruCache struct{ c *lru.Cache[string, string] }

func (l lruCache) Get(k string) (string, bool) { return l.c.Get(k) }
func (l lruCache) Add(k, v string)             { l.c.Add(k, v) }
func (l lruCache) Len() int                    { return l.c.Len() }

type twoQueueCache struct{ c *lru.TwoQueueCache[string, string] }

func (q twoQueueCache) Get(k string) (string, bool) { return q.c.Get(k) }
func (q twoQueueCache) Add(k, v string)             { q.c.Add(k, v) }
func (q twoQueueCache) Len() int                    { return q.c.Len() }

// NewResponseCache returns a cache holding at most size entries evicted by
// policy ("lru" or "2q").
func NewResponseCache(policy string, size int) (ResponseCache, error) {
	switch policy {
	case "", PolicyLRU:
		c, err := lru.New[string, string](size)
		if err != nil {
			return nil, fmt.Errorf("creating lru cache: %w", err)
		}
		return lruCache{c}, nil
	case Policy2Q:
		c, err := lru.New2Q[string, string](size)
		if err != nil {
			return nil, fmt.Errorf("creating 2q cache: %w", err)
		}
		return twoQueueCache{c}, nil
	default:
		return nil, fmt.Errorf("unknown cache policy %q", policy)
	}
}

// CachedCompleter serves repeated prompts from a ResponseCache.
type CachedCompleter struct {
	inner Completer
	cache ResponseCache
}

// NewCachedCompleter wraps inner with cache.
func NewCachedCompleter(inner Completer, cache ResponseCache) *CachedCompleter {
	return &CachedCompleter{inner: inner, cache: cache}
}

// Name returns the wrapped completer's name.
func (c *CachedCompleter) Name() string { return c.inner.Name() }

// Complete returns a cached reply unless req.NoCache is set. Replies are
// stored only when req.Validate accepts them.
func (c *CachedCompleter) Complete(ctx context.Context, req Request) (string, error) {
	key := c.key(req)
	if !req.NoCache {
		if v, ok := c.cache.Get(key); ok {
			return v, nil
		}
	}
	v, err := c.inner.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	if req.Validate == nil || req.Validate(v) == nil {
		c.cache.Add(key, v)
	}
	return v, nil
}

// Cached reports whether req would be served from the cache.
func (c *CachedCompleter) Cached(req Request) bool {
	_, ok := c.cache.Get(c.key(req))
	return ok
}

func (c *CachedCompleter) key(req Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%t", c.inner.Name(), req.System, req.User, req.JSON)
	return hex.EncodeToString(h.Sum(nil))
}
