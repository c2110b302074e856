package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecommendationCache keeps per-user recommendation lists in Redis so a page
// refresh does not re-run the genre scoring queries. Entries expire after the
// configured TTL and get dropped whenever the user's shelf changes.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection.
func New(redisAddr, password string, ttl time.Duration) (*RecommendationCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RecommendationCache{client: rdb, ttl: ttl}, nil
}

// NewDisabled returns a cache that stores nothing, for tests and for running
// without Redis.
func NewDisabled() *RecommendationCache {
	return &RecommendationCache{}
}

func (c *RecommendationCache) key(userID string, limit int) string {
	return fmt.Sprintf("recs:user:%s:limit:%d", userID, limit)
}

// Get returns the cached payload for the user, or (nil, nil) on a miss.
func (c *RecommendationCache) Get(ctx context.Context, userID string, limit int, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, c.key(userID, limit)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores the payload under the user's key with the configured TTL.
func (c *RecommendationCache) Set(ctx context.Context, userID string, limit int, payload any) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID, limit), raw, c.ttl).Err()
}

// Invalidate drops every cached list for the user. Called after shelf
// mutations; a stale list is harmless so errors are up to the caller to log.
func (c *RecommendationCache) Invalidate(ctx context.Context, userID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	pattern := fmt.Sprintf("recs:user:%s:limit:*", userID)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Close releases the Redis connection.
func (c *RecommendationCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
