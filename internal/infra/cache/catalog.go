package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const activeServicesKey = "catalog:services:active"

// CatalogCache keeps the active service catalog in Redis.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// GetActive reports a miss (false) on redis.Nil and on undecodable payloads.
func (c *CatalogCache) GetActive(ctx context.Context) ([]models.Service, bool, error) {
	raw, err := c.client.Get(ctx, activeServicesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var services []models.Service
	if err := json.Unmarshal(raw, &services); err != nil {
		return nil, false, nil
	}
	return services, true, nil
}

func (c *CatalogCache) SetActive(ctx context.Context, services []models.Service) error {
	raw, err := json.Marshal(services)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, activeServicesKey, raw, c.ttl).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, activeServicesKey).Err()
}

// Nop never hits. Used when REDIS_URL is empty.
type Nop struct{}

func (Nop) GetActive(context.Context) ([]models.Service, bool, error) { return nil, false, nil }
func (Nop) SetActive(context.Context, []models.Service) error         { return nil }
func (Nop) Invalidate(context.Context) error                          { return nil }
