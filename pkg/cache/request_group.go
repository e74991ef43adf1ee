package cache

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// RequestGroup caches the result of an expensive fetch per key and collapses
// concurrent fetches for the same key into a single in-flight call. A second
// caller arriving while the factory for that key is still running waits for
// the same result instead of issuing a duplicate upstream request.
type RequestGroup struct {
	store Cache
	group singleflight.Group
	ttl   time.Duration
}

func NewRequestGroup(ttl time.Duration) *RequestGroup {
	return &RequestGroup{
		store: NewMemoryCache(),
		ttl:   ttl,
	}
}

// GetOrCreate returns the cached value for key, or runs factory exactly once
// per key across concurrent callers and caches its result for the group TTL.
// Factory errors are not cached.
func (r *RequestGroup) GetOrCreate(ctx context.Context, key string, factory func(ctx context.Context) (string, error)) (string, error) {
	if cached, err := r.store.Get(ctx, key); err == nil {
		return cached, nil
	} else if !errors.Is(err, ErrMiss) {
		return "", err
	}

	value, err, _ := r.group.Do(key, func() (any, error) {
		// Re-check under the group: another caller may have populated the
		// entry between our Get and Do.
		if cached, err := r.store.Get(ctx, key); err == nil {
			return cached, nil
		}

		created, err := factory(ctx)
		if err != nil {
			return "", err
		}

		if err := r.store.Set(ctx, key, created, r.ttl); err != nil {
			return "", err
		}
		return created, nil
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}
