package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestInMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	store := NewInMemoryIdempotencyStore(WithClock(clock.Now))
	defer store.Close()

	t.Run("first claim wins", func(t *testing.T) {
		ok, err := store.MarkProcessed(ctx, "create-order-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.MarkProcessed(ctx, "create-order-1", time.Hour)
		require.NoError(t, err)
		assert.False(t, ok)

		processed, err := store.IsProcessed(ctx, "create-order-1")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("expired keys can be claimed again", func(t *testing.T) {
		ok, _ := store.MarkProcessed(ctx, "create-order-2", time.Minute)
		require.True(t, ok)

		clock.Advance(2 * time.Minute)

		processed, _ := store.IsProcessed(ctx, "create-order-2")
		assert.False(t, processed)
		ok, _ = store.MarkProcessed(ctx, "create-order-2", time.Minute)
		assert.True(t, ok)
	})

	t.Run("release frees the key", func(t *testing.T) {
		ok, _ := store.MarkProcessed(ctx, "create-order-3", time.Hour)
		require.True(t, ok)
		require.NoError(t, store.Release(ctx, "create-order-3"))

		ok, _ = store.MarkProcessed(ctx, "create-order-3", time.Hour)
		assert.True(t, ok)
	})

	t.Run("purge drops expired entries", func(t *testing.T) {
		_, _ = store.MarkProcessed(ctx, "short", time.Second)
		before := store.Len()
		clock.Advance(2 * time.Hour)
		store.purgeExpired()
		assert.Less(t, store.Len(), before)
		assert.Zero(t, store.Len())
	})
}

func TestInMemoryIdempotencyStore_ConcurrentClaims(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.MarkProcessed(context.Background(), "same-key", time.Hour); ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
