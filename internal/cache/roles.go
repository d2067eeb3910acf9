// Package cache holds the optional role cache in front of the users collection.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/logger"
)

const (
	rolePrefix = "scholarstream:role:"
	genPrefix  = "scholarstream:rolegen:"

	// genTTL must outlive any in-flight store read.
	genTTL = 24 * time.Hour
)

var errStaleFill = errors.New("role invalidated since read")

// RoleCache stores role lookups by email. Errors are never surfaced:
// a failed Get is a miss and a failed Set/Invalidate is logged.
//
// Every Invalidate bumps the email's generation. Get reports the
// generation it saw and Set drops the write when it has moved on, so a
// lookup that raced a role change cannot put the old role back.
type RoleCache interface {
	Get(ctx context.Context, email string) (role string, gen int64, ok bool)
	Set(ctx context.Context, email, role string, gen int64)
	Invalidate(ctx context.Context, email string)
}

// NopRoleCache is used when no Redis URL is configured.
type NopRoleCache struct{}

func (NopRoleCache) Get(context.Context, string) (string, int64, bool) { return "", 0, false }
func (NopRoleCache) Set(context.Context, string, string, int64)        {}
func (NopRoleCache) Invalidate(context.Context, string)                {}

// RedisRoleCache keeps roles in Redis with a TTL.
type RedisRoleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRoleCache parses redisURL and verifies the server responds.
func NewRedisRoleCache(ctx context.Context, redisURL string, ttl time.Duration) (*RedisRoleCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info().Str("addr", opts.Addr).Msg("connected to Redis role cache")
	return NewRedisRoleCacheFromClient(client, ttl), nil
}

// NewRedisRoleCacheFromClient wraps an existing client.
func NewRedisRoleCacheFromClient(client *redis.Client, ttl time.Duration) *RedisRoleCache {
	return &RedisRoleCache{client: client, ttl: ttl}
}

// RoleKey is the Redis key for email. Lookups in the store are exact-match,
// so the key is too.
func RoleKey(email string) string {
	return rolePrefix + email
}

// GenerationKey holds the invalidation counter for email.
func GenerationKey(email string) string {
	return genPrefix + email
}

func (c *RedisRoleCache) Get(ctx context.Context, email string) (string, int64, bool) {
	vals, err := c.client.MGet(ctx, RoleKey(email), GenerationKey(email)).Result()
	if err != nil {
		logger.Warn().Err(err).Msg("role cache get failed")
		return "", -1, false
	}

	gen := int64(0)
	if s, ok := vals[1].(string); ok {
		if gen, err = strconv.ParseInt(s, 10, 64); err != nil {
			logger.Warn().Err(err).Str("email", email).Msg("role cache generation unreadable")
			return "", -1, false
		}
	}

	role, ok := vals[0].(string)
	if !ok {
		return "", gen, false
	}
	return role, gen, true
}

// Set writes role only while the generation still equals gen. A negative
// gen means Get could not read it and nothing is written.
func (c *RedisRoleCache) Set(ctx context.Context, email, role string, gen int64) {
	if gen < 0 {
		return
	}

	genKey := GenerationKey(email)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if cur != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, RoleKey(email), role, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		logger.Debug().Str("email", email).Msg("role cache fill skipped after invalidation")
	default:
		logger.Warn().Err(err).Msg("role cache set failed")
	}
}

func (c *RedisRoleCache) Invalidate(ctx context.Context, email string) {
	genKey := GenerationKey(email)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, genTTL)
		pipe.Del(ctx, RoleKey(email))
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Str("email", email).Msg("role cache invalidate failed")
	}
}

// Close releases the Redis connection pool.
func (c *RedisRoleCache) Close() error {
	return c.client.Close()
}
