package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryPageCacheHitAndClear(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryPageCache(time.Minute)

	_, ok := cache.Get(ctx)
	require.False(t, ok)

	cache.Set(ctx, []byte("rendered page"))
	content, ok := cache.Get(ctx)
	require.True(t, ok)
	require.Equal(t, []byte("rendered page"), content)

	// Overwrites replace the previous entry.
	cache.Set(ctx, []byte("newer page"))
	content, ok = cache.Get(ctx)
	require.True(t, ok)
	require.Equal(t, []byte("newer page"), content)

	cache.Clear(ctx)
	_, ok = cache.Get(ctx)
	require.False(t, ok)
}

func TestMemoryPageCacheExpires(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryPageCache(30 * time.Millisecond)

	cache.Set(ctx, []byte("rendered page"))
	_, ok := cache.Get(ctx)
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = cache.Get(ctx)
	require.False(t, ok)
}
