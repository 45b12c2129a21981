package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const dashboardSummaryKey = "ledger:dashboard:summary"

// New creates a new Redis client and checks it is reachable.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return client, nil
}

// DashboardCache keeps the last dashboard summary in Redis as JSON.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache wraps client. A ttl of zero keeps entries until invalidated.
func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{client: client, ttl: ttl}
}

// GetSummary returns (nil, nil) when nothing is cached.
func (c *DashboardCache) GetSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	raw, err := c.client.Get(ctx, dashboardSummaryKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get dashboard summary: %w", err)
	}

	var summary domain.DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("cache: decode dashboard summary: %w", err)
	}
	return &summary, nil
}

func (c *DashboardCache) SetSummary(ctx context.Context, summary *domain.DashboardSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("cache: encode dashboard summary: %w", err)
	}
	if err := c.client.Set(ctx, dashboardSummaryKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set dashboard summary: %w", err)
	}
	return nil
}

func (c *DashboardCache) DeleteSummary(ctx context.Context) error {
	if err := c.client.Del(ctx, dashboardSummaryKey).Err(); err != nil {
		return fmt.Errorf("cache: delete dashboard summary: %w", err)
	}
	return nil
}
