package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewAvailabilityCache(mr.Addr(), zerolog.Nop())
	require.NotNil(t, c)
	return c, mr
}

func TestAvailabilityCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	key := Key(7, "2030-01-07", "2030-01-07", 30)
	c.Set(ctx, key, map[string]int{"slots": 18})

	var out map[string]int
	require.True(t, c.Get(ctx, key, &out))
	assert.Equal(t, 18, out["slots"])
}

func TestAvailabilityCacheMissOnUnknownKey(t *testing.T) {
	c, _ := newTestCache(t)

	var out string
	assert.False(t, c.Get(context.Background(), "availability:99:x:y:30", &out))
}

func TestInvalidateBarberDropsOnlyThatBarber(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	mine := Key(7, "2030-01-07", "2030-01-13", 30)
	mineOther := Key(7, "2030-01-07", "2030-01-07", 15)
	other := Key(8, "2030-01-07", "2030-01-13", 30)
	c.Set(ctx, mine, "a")
	c.Set(ctx, mineOther, "b")
	c.Set(ctx, other, "c")

	c.InvalidateBarber(ctx, 7)

	assert.False(t, mr.Exists(mine))
	assert.False(t, mr.Exists(mineOther))
	assert.True(t, mr.Exists(other))
}

func TestNilCacheIsSafe(t *testing.T) {
	c := NewAvailabilityCache("", zerolog.Nop())
	require.Nil(t, c)

	ctx := context.Background()
	c.Set(ctx, "k", "v")
	var out string
	assert.False(t, c.Get(ctx, "k", &out))
	c.InvalidateBarber(ctx, 7)
}
