package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TeknoZest/damenschstorefront/internal/config"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "product:slug:tee-red", ProductKey("tee-red"))
	assert.Equal(t, "category:slug:women/tops", CategoryKey("women/tops"))
	assert.Equal(t, "listing:women/tops:s=:asc|p=1", ListingKey("women/tops", "s=:asc|p=1"))
	assert.Equal(t, "listing:women/tops:*", ListingPattern("women/tops"))
}

func TestMatchPattern(t *testing.T) {
	testCases := []struct {
		pattern, key string
		expected     bool
	}{
		{"listing:*", "listing:women/tops:p=1", true},
		{"listing:women/tops:*", "listing:women/tops:p=1", true},
		{"listing:women/tops:*", "listing:women/topsy:p=1", false},
		{"listing:*:p=1", "listing:men:p=1", true},
		{"listing:*:p=1", "listing:men:p=2", false},
		{"product:slug:tee", "product:slug:tee", true},
		{"product:slug:tee", "product:slug:tee-red", false},
		{"*", "anything", true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, matchPattern(tc.pattern, tc.key), "%s ~ %s", tc.pattern, tc.key)
	}
}

func TestInMemoryCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(zap.NewNop())

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	value, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Delete(ctx, "k"))
	exists, _ = c.Exists(ctx, "k")
	assert.False(t, exists)
}

func TestInMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(zap.NewNop())

	require.NoError(t, c.Set(ctx, "k", []byte("v"), -time.Second))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInMemoryCache_DeleteByPattern(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(zap.NewNop())
	for _, key := range []string{"listing:men:p=1", "listing:men:p=2", "listing:women:p=1", ProductKey("tee")} {
		require.NoError(t, c.Set(ctx, key, []byte("x"), time.Minute))
	}

	require.NoError(t, c.DeleteByPattern(ctx, ListingPattern("men")))

	for key, expected := range map[string]bool{
		"listing:men:p=1":   false,
		"listing:men:p=2":   false,
		"listing:women:p=1": true,
		ProductKey("tee"):   true,
	} {
		exists, err := c.Exists(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, expected, exists, key)
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(zap.NewNop())
	type payload struct {
		Slug string `json:"slug"`
	}

	require.NoError(t, SetJSON(ctx, c, "p", payload{Slug: "tee"}, TTL(60)))

	var got payload
	require.NoError(t, GetJSON(ctx, c, "p", &got))
	assert.Equal(t, "tee", got.Slug)
}

func TestNewCache_DisabledFallsBackToMemory(t *testing.T) {
	c := NewCache(&config.Config{UseCache: false}, zap.NewNop())

	assert.IsType(t, &InMemoryCache{}, c)
}
