// Package cache keeps catalog snapshots in Redis in front of Spanner.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/checkout-pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/checkout-pricing-service/internal/logging"
)

const keyPrefix = "catalog_snapshot:"

// Client is the subset of redis.Cmdable the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CatalogCache is a read-through CatalogReader. Redis failures are logged and fall back
// to the underlying reader, so a cache outage only costs latency.
type CatalogCache struct {
	client Client
	next   contracts.CatalogReader
	ttl    time.Duration
	logger logrus.FieldLogger
}

var _ contracts.CatalogReader = (*CatalogCache)(nil)

// NewCatalogCache wraps next. A non-positive ttl disables expiry.
func NewCatalogCache(client Client, next contracts.CatalogReader, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logging.NewModuleLogger("catalog-cache"),
	}
}

// Key returns the Redis key of a package snapshot.
func Key(packageID string) string {
	return keyPrefix + packageID
}

// LoadSnapshot implements contracts.CatalogReader.
func (c *CatalogCache) LoadSnapshot(ctx context.Context, packageID string) (*domain.CatalogSnapshot, error) {
	key := Key(packageID)
	logger := c.logger.WithField("package_id", packageID)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var snapshot domain.CatalogSnapshot
		if err := json.Unmarshal(raw, &snapshot); err == nil {
			return &snapshot, nil
		}
		logger.WithError(err).Warn("Discarding undecodable cached snapshot")
	case !errors.Is(err, redis.Nil):
		logger.WithError(err).Warn("Catalog cache read failed")
	}

	snapshot, err := c.next.LoadSnapshot(ctx, packageID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.WithError(err).Warn("Catalog cache write failed")
	}
	return snapshot, nil
}

// Invalidate drops cached snapshots, e.g. after the catalog is reseeded.
func (c *CatalogCache) Invalidate(ctx context.Context, packageIDs ...string) error {
	if len(packageIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(packageIDs))
	for _, id := range packageIDs {
		keys = append(keys, Key(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}
