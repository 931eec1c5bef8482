package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of Redis used for migration coordination and rate limiting
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisClient=MockRedisClient,RedisRateLimiter=MockRedisRateLimiter
type RedisClient interface {
	// Ping checks if Redis is reachable
	Ping(ctx context.Context) error

	// Get returns the raw value of key; redis.Nil when the key is absent or expired
	Get(ctx context.Context, key string) ([]byte, error)

	// SetEX stores value under key with its own expiry
	SetEX(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Del removes keys
	Del(ctx context.Context, keys ...string) error

	// CompareAndSetEX rewrites key under WATCH. update receives the current value (nil when
	// absent) and returns the replacement, or false to leave the key untouched.
	// It reports whether the key was written.
	CompareAndSetEX(ctx context.Context, key string, ttl time.Duration, update func(current []byte) ([]byte, bool, error)) (bool, error)

	// NewRateLimiter creates a distributed rate limiter backed by this client
	NewRateLimiter() RedisRateLimiter

	// Close closes the Redis connection
	Close() error
}

// maxCASAttempts bounds the retries of a CompareAndSetEX whose key kept changing
const maxCASAttempts = 5

// ErrCASContention is returned when a watched key changed on every attempt
var ErrCASContention = errors.New("redis key changed concurrently")

// IsNil reports whether err means "key not found"
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

type realRedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client
func NewRedisClient(addr, password string, db int) RedisClient {
	return &realRedisClient{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (r *realRedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *realRedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	return r.client.Get(ctx, key).Bytes()
}

func (r *realRedisClient) SetEX(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.SetEx(ctx, key, value, ttl).Err()
}

func (r *realRedisClient) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *realRedisClient) CompareAndSetEX(ctx context.Context, key string, ttl time.Duration, update func(current []byte) ([]byte, bool, error)) (bool, error) {
	var written bool
	txf := func(tx *redis.Tx) error {
		written = false
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		next, ok, err := update(current)
		if err != nil || !ok {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetEx(ctx, key, next, ttl)
			return nil
		})
		if err == nil {
			written = true
		}
		return err
	}

	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return written, err
	}
	return false, ErrCASContention
}

func (r *realRedisClient) NewRateLimiter() RedisRateLimiter {
	return &realRateLimiter{limiter: redis_rate.NewLimiter(r.client)}
}

func (r *realRedisClient) Close() error {
	return r.client.Close()
}

// RedisRateLimiter is a distributed GCRA limiter
type RedisRateLimiter interface {
	// Allow checks whether one more request under key fits in limit
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

type realRateLimiter struct {
	limiter *redis_rate.Limiter
}

func (r *realRateLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	return r.limiter.Allow(ctx, key, limit)
}
