package di

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCache_SetGet(t *testing.T) {
	cache := NewInMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", 60))

	got, found := cache.Get(ctx, "key")
	assert.True(t, found)
	assert.Equal(t, "value", got)
}

func TestInMemoryCache_MissingKey(t *testing.T) {
	cache := NewInMemoryCache()

	_, found := cache.Get(context.Background(), "absent")
	assert.False(t, found)
}

func TestInMemoryCache_Delete(t *testing.T) {
	cache := NewInMemoryCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", 60))
	require.NoError(t, cache.Delete(ctx, "key"))

	_, found := cache.Get(ctx, "key")
	assert.False(t, found)
}

func TestInMemoryCache_ExpiredEntryIsMiss(t *testing.T) {
	cache := NewInMemoryCache()
	ctx := context.Background()

	// TTL of zero expires immediately
	require.NoError(t, cache.Set(ctx, "key", "value", 0))

	_, found := cache.Get(ctx, "key")
	assert.False(t, found)
}
