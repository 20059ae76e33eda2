package gate

import (
	"context"
	"sync"
	"time"
)

// CachedResolver wraps a Resolver with TTL-based caching so authorization
// checks do not hit the database on every request.
type CachedResolver struct {
	inner Resolver
	cache map[uint]*cacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
}

type cacheEntry struct {
	set       Set
	expiresAt time.Time
}

// NewCachedResolver wraps a resolver with caching. ttl is how long authority
// sets are cached before re-fetching.
func NewCachedResolver(inner Resolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		cache: make(map[uint]*cacheEntry),
		ttl:   ttl,
	}
}

// Resolve returns the authority set for the user, using the cache if fresh.
func (r *CachedResolver) Resolve(ctx context.Context, userID uint) (Set, error) {
	r.mu.RLock()
	entry, ok := r.cache[userID]
	r.mu.RUnlock()

	if ok && time.Now().Before(entry.expiresAt) {
		return entry.set, nil
	}

	set, err := r.inner.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[userID] = &cacheEntry{set: set, expiresAt: time.Now().Add(r.ttl)}
	r.mu.Unlock()

	return set, nil
}

// Invalidate removes a user from the cache. Call this when a user's role
// assignment changes.
func (r *CachedResolver) Invalidate(userID uint) {
	r.mu.Lock()
	delete(r.cache, userID)
	r.mu.Unlock()
}

// InvalidateAll clears the entire cache. Call this when role permissions are
// modified.
func (r *CachedResolver) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[uint]*cacheEntry)
	r.mu.Unlock()
}

// StaticResolver is an in-memory resolver for tests and static wiring.
type StaticResolver struct {
	sets map[uint]Set
}

func NewStaticResolver() *StaticResolver {
	return &StaticResolver{sets: make(map[uint]Set)}
}

// Set assigns an authority set to a user.
func (r *StaticResolver) Set(userID uint, set Set) {
	r.sets[userID] = set
}

// Resolve returns the assigned set; unknown users get an empty set.
func (r *StaticResolver) Resolve(_ context.Context, userID uint) (Set, error) {
	return r.sets[userID], nil
}
