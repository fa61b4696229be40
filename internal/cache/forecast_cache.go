package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prasetyowira/stockcast/backend-go/internal/config"
	"github.com/prasetyowira/stockcast/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	forecastKeyPrefix = "forecast"
	scanBatchSize     = 100
)

// CachedForecast is the unit stored per product and settings fingerprint.
type CachedForecast struct {
	Forecast    *domain.Forecast             `json:"forecast"`
	Comparisons []domain.AlgorithmComparison `json:"comparisons,omitempty"`
}

type ForecastCache interface {
	Get(ctx context.Context, productID, fingerprint string) (*CachedForecast, bool, error)
	Set(ctx context.Context, productID, fingerprint string, value *CachedForecast) error
	// InvalidateProduct drops every cached forecast for one product,
	// regardless of settings.
	InvalidateProduct(ctx context.Context, productID string) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) Get(ctx context.Context, productID, fingerprint string) (*CachedForecast, bool, error) {
	payload, err := c.client.Get(ctx, buildForecastKey(productID, fingerprint)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var cached CachedForecast
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, false, fmt.Errorf("decode forecast cache: %w", err)
	}

	return &cached, true, nil
}

func (c *redisForecastCache) Set(ctx context.Context, productID, fingerprint string, value *CachedForecast) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode forecast cache: %w", err)
	}

	if err := c.client.Set(ctx, buildForecastKey(productID, fingerprint), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisForecastCache) InvalidateProduct(ctx context.Context, productID string) error {
	prefix := fmt.Sprintf("%s:%s:", forecastKeyPrefix, productID)
	return deleteKeysWithPrefix(ctx, c.client, prefix, scanBatchSize)
}

func (n *noopForecastCache) Get(ctx context.Context, productID, fingerprint string) (*CachedForecast, bool, error) {
	return nil, false, nil
}

func (n *noopForecastCache) Set(ctx context.Context, productID, fingerprint string, value *CachedForecast) error {
	return nil
}

func (n *noopForecastCache) InvalidateProduct(ctx context.Context, productID string) error {
	return nil
}

func buildForecastKey(productID, fingerprint string) string {
	hash := sha1.Sum([]byte(fingerprint))
	return fmt.Sprintf("%s:%s:%s", forecastKeyPrefix, productID, hex.EncodeToString(hash[:]))
}
