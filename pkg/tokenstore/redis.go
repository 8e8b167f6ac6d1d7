package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Store against a Redis key. Intended for headless
// deployments (workers, schedulers) where several processes share one
// service session and a local file would not be visible to all of them.
type Redis struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// RedisOption configures the Redis store.
type RedisOption func(*Redis)

// WithRedisKey overrides the Redis key the token lives under.
func WithRedisKey(key string) RedisOption {
	return func(r *Redis) {
		if key != "" {
			r.key = key
		}
	}
}

// WithRedisTTL sets an expiry on the stored token so an abandoned session
// does not outlive the token it holds. Zero means no expiry.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// NewRedis creates a Redis-backed store on the given client.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		key:    "authkit:session_token",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Save persists the token under the configured key.
func (r *Redis) Save(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := r.client.Set(ctx, r.key, token, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Load returns the persisted token, or ErrNoToken when the key is absent.
func (r *Redis) Load(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Clear deletes the key. Deleting an absent key is a no-op.
func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}
