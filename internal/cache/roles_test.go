package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisRoleCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisRoleCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRoleKeyIsExactEmail(t *testing.T) {
	assert.Equal(t, "scholarstream:role:Admin@Example.com", RoleKey("Admin@Example.com"))
	assert.NotEqual(t, RoleKey("admin@example.com"), RoleKey("ADMIN@example.com"))
}

func TestNopRoleCacheAlwaysMisses(t *testing.T) {
	var c RoleCache = NopRoleCache{}
	c.Set(context.Background(), "a@b.c", "admin", 0)

	role, _, ok := c.Get(context.Background(), "a@b.c")
	assert.False(t, ok)
	assert.Empty(t, role)
}

func TestRedisRoleCacheSetThenGet(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, gen, ok := c.Get(ctx, "admin@example.com")
	require.False(t, ok)
	assert.Zero(t, gen)

	c.Set(ctx, "admin@example.com", "admin", gen)

	role, _, ok := c.Get(ctx, "admin@example.com")
	assert.True(t, ok)
	assert.Equal(t, "admin", role)
}

func TestRedisRoleCacheKeysAreCaseSensitive(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "admin@example.com", "admin", 0)

	_, _, ok := c.Get(ctx, "ADMIN@example.com")
	assert.False(t, ok)
	_, _, ok = c.Get(ctx, " admin@example.com")
	assert.False(t, ok)
}

func TestRedisRoleCacheAppliesTTL(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	c.Set(ctx, "mod@example.com", "moderator", 0)
	assert.Equal(t, 30*time.Second, mr.TTL(RoleKey("mod@example.com")))

	mr.FastForward(31 * time.Second)

	_, _, ok := c.Get(ctx, "mod@example.com")
	assert.False(t, ok)
}

func TestRedisRoleCacheInvalidate(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "stu@example.com", "student", 0)
	require.True(t, mr.Exists(RoleKey("stu@example.com")))

	c.Invalidate(ctx, "stu@example.com")

	assert.False(t, mr.Exists(RoleKey("stu@example.com")))
	_, gen, ok := c.Get(ctx, "stu@example.com")
	assert.False(t, ok)
	assert.Equal(t, int64(1), gen)
	assert.Equal(t, genTTL, mr.TTL(GenerationKey("stu@example.com")))
}

func TestRedisRoleCacheDropsFillAfterInvalidate(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	// A lookup misses and reads the old role from the store...
	_, gen, ok := c.Get(ctx, "demoted@example.com")
	require.False(t, ok)

	// ...while the role is changed and the entry invalidated.
	c.Invalidate(ctx, "demoted@example.com")

	c.Set(ctx, "demoted@example.com", "admin", gen)

	_, _, ok = c.Get(ctx, "demoted@example.com")
	assert.False(t, ok)
	assert.False(t, mr.Exists(RoleKey("demoted@example.com")))

	// A fill that started after the invalidation is kept.
	_, gen, _ = c.Get(ctx, "demoted@example.com")
	c.Set(ctx, "demoted@example.com", "student", gen)
	role, _, ok := c.Get(ctx, "demoted@example.com")
	assert.True(t, ok)
	assert.Equal(t, "student", role)
}

func TestRedisRoleCacheTreatsErrorsAsMisses(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisRoleCacheFromClient(client, time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	c.Set(ctx, "a@b.c", "admin", 0)
	c.Invalidate(ctx, "a@b.c")

	role, gen, ok := c.Get(ctx, "a@b.c")
	assert.False(t, ok)
	assert.Empty(t, role)
	assert.Negative(t, gen)
}

func TestNewRedisRoleCacheRejectsBadURL(t *testing.T) {
	_, err := NewRedisRoleCache(context.Background(), "http://not-redis", time.Minute)
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse Redis URL")
}

func TestNewRedisRoleCacheConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisRoleCache(context.Background(), "redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
}
