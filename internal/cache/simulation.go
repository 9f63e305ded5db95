// Package cache stores completed simulation responses keyed by the request
// that produced them, so identical requests within the TTL skip the run.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/apparel-insights/inventory-sim/internal/config"
	"github.com/apparel-insights/inventory-sim/internal/results"
)

const (
	simulationKeyPrefix = "simulation:response"
	scanBatchSize       = 100
)

// SimulationCache is consulted before a run and written after one. Lookup
// misses and backend errors must never fail the request; callers log and
// fall through to running the simulation.
type SimulationCache interface {
	Get(ctx context.Context, key string) (*results.Response, bool, error)
	Set(ctx context.Context, key string, resp *results.Response) error
	InvalidateAll(ctx context.Context) error
}

type redisSimulationCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSimulationCache struct{}

// NewSimulationCache returns a redis-backed cache when caching is enabled in
// config, verifying connectivity up front.
func NewSimulationCache(cfg config.CacheConfig) (SimulationCache, error) {
	if !cfg.Enabled {
		return &noopSimulationCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSimulationCache{client: client, ttl: ttl}, nil
}

func NewNoopSimulationCache() SimulationCache {
	return &noopSimulationCache{}
}

// RequestKey derives a stable cache key from any JSON-encodable request.
func RequestKey(request any) (string, error) {
	raw, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	hash := sha1.Sum(raw)
	return fmt.Sprintf("%s:%s", simulationKeyPrefix, hex.EncodeToString(hash[:])), nil
}

func (c *redisSimulationCache) Get(ctx context.Context, key string) (*results.Response, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var resp results.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, false, fmt.Errorf("decode simulation cache: %w", err)
	}

	return &resp, true, nil
}

func (c *redisSimulationCache) Set(ctx context.Context, key string, resp *results.Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode simulation cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisSimulationCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, simulationKeyPrefix, scanBatchSize)
}

func (n *noopSimulationCache) Get(ctx context.Context, key string) (*results.Response, bool, error) {
	return nil, false, nil
}

func (n *noopSimulationCache) Set(ctx context.Context, key string, resp *results.Response) error {
	return nil
}

func (n *noopSimulationCache) InvalidateAll(ctx context.Context) error {
	return nil
}
