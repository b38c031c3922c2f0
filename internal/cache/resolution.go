// Package cache provides an optional redis-backed cache for raw
// resolutions, so repeated requests for the same source URL skip the
// resolver subprocess. Only the raw resolution is cached; short links
// are always minted per request.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/auraflux/auraflux/internal/types"
)

const keyPrefix = "resolution:"

// ResolutionCache caches resolver output keyed by source URL hash.
type ResolutionCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewResolutionCache connects to redis and verifies the connection.
func NewResolutionCache(redisAddr string, ttl time.Duration, logger *zap.Logger) (*ResolutionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		PoolSize:     20,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &ResolutionCache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}, nil
}

// Get returns the cached resolution for url, or (nil, nil) on a miss.
func (rc *ResolutionCache) Get(ctx context.Context, url string) (*types.Resolution, error) {
	data, err := rc.client.Get(ctx, keyFor(url)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		rc.logger.Warn("resolution cache read failed",
			zap.String("url", url),
			zap.Error(err),
		)
		return nil, err
	}

	var res types.Resolution
	if err := json.Unmarshal(data, &res); err != nil {
		rc.logger.Error("corrupt cached resolution, dropping",
			zap.String("url", url),
			zap.Error(err),
		)
		_ = rc.client.Del(ctx, keyFor(url)).Err()
		return nil, err
	}

	return &res, nil
}

// Set stores a resolution under the configured TTL.
func (rc *ResolutionCache) Set(ctx context.Context, url string, res *types.Resolution) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal resolution: %w", err)
	}

	if err := rc.client.Set(ctx, keyFor(url), data, rc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Close closes the redis connection.
func (rc *ResolutionCache) Close() error {
	return rc.client.Close()
}

func keyFor(url string) string {
	hash := sha256.Sum256([]byte(url))
	return keyPrefix + hex.EncodeToString(hash[:])
}
