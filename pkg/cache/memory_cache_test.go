package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestMemoryCache_MissOnUnknownKey(t *testing.T) {
	c := NewMemoryCache()

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCache_LazyExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	current := time.Now()
	c.now = func() time.Time { return current }

	require.NoError(t, c.Set(ctx, "k", "v", 30*time.Second))

	current = current.Add(29 * time.Second)
	_, err := c.Get(ctx, "k")
	require.NoError(t, err)

	current = current.Add(2 * time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	// entry must have been evicted on that read
	c.mu.Lock()
	_, present := c.entries["k"]
	c.mu.Unlock()
	assert.False(t, present)
}

func TestRequestGroup_CollapsesConcurrentCalls(t *testing.T) {
	ctx := context.Background()
	g := NewRequestGroup(30 * time.Second)

	var calls int32
	release := make(chan struct{})

	factory := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "payload", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := g.GetOrCreate(ctx, "same-key", factory)
			require.NoError(t, err)
			results[i] = v
		}(i)
	}

	// let both goroutines reach the group before releasing the factory
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Equal(t, "payload", results[0])
	assert.Equal(t, "payload", results[1])
}

func TestRequestGroup_CachesAcrossSequentialCalls(t *testing.T) {
	ctx := context.Background()
	g := NewRequestGroup(30 * time.Second)

	var calls int32
	factory := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "payload", nil
	}

	for i := 0; i < 3; i++ {
		v, err := g.GetOrCreate(ctx, "k", factory)
		require.NoError(t, err)
		assert.Equal(t, "payload", v)
	}

	assert.EqualValues(t, 1, calls)
}

func TestRequestGroup_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	g := NewRequestGroup(30 * time.Second)

	boom := errors.New("upstream down")
	var calls int32
	factory := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		if atomic.LoadInt32(&calls) == 1 {
			return "", boom
		}
		return "recovered", nil
	}

	_, err := g.GetOrCreate(ctx, "k", factory)
	assert.ErrorIs(t, err, boom)

	v, err := g.GetOrCreate(ctx, "k", factory)
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
	assert.EqualValues(t, 2, calls)
}
