package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fixitlab/buyback-api/app/dto"
)

const inventorySnapshotKey = "storefront:inventory:snapshot"

// InventoryCache stores the materialized storefront inventory snapshot.
type InventoryCache interface {
	StoreSnapshot(ctx context.Context, items []dto.InventoryItemView) error
	LoadSnapshot(ctx context.Context) ([]dto.InventoryItemView, error)
}

type redisInventoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisInventoryCache(client *redis.Client, ttl time.Duration) InventoryCache {
	return &redisInventoryCache{client: client, ttl: ttl}
}

func (c *redisInventoryCache) StoreSnapshot(ctx context.Context, items []dto.InventoryItemView) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory snapshot: %w", err)
	}
	if err := c.client.Set(ctx, inventorySnapshotKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store inventory snapshot: %w", err)
	}
	return nil
}

func (c *redisInventoryCache) LoadSnapshot(ctx context.Context) ([]dto.InventoryItemView, error) {
	payload, err := c.client.Get(ctx, inventorySnapshotKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory snapshot: %w", err)
	}

	var items []dto.InventoryItemView
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("failed to decode inventory snapshot: %w", err)
	}
	return items, nil
}
