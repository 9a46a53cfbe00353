package infra

import (
	"context"
	"encoding/json"
	"time"

	"stockledger/internal/dto"

	"github.com/redis/go-redis/v9"
)

// StockCache is the read-side cache for the public stock check endpoint.
// Population and invalidation are both best-effort: cache errors never fail a
// request, and a nil client degrades to a permanent miss (unit test mode).
type StockCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStockCache(rdb *redis.Client, ttl time.Duration) *StockCache {
	return &StockCache{rdb: rdb, ttl: ttl}
}

func (c *StockCache) key(partNumber string) string { return "stock:" + partNumber }

func (c *StockCache) Get(ctx context.Context, partNumber string) (*dto.StockCheckResponse, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	cached, err := c.rdb.Get(ctx, c.key(partNumber)).Bytes()
	if err != nil {
		return nil, false
	}
	var resp dto.StockCheckResponse
	if err := json.Unmarshal(cached, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (c *StockCache) Set(ctx context.Context, resp *dto.StockCheckResponse) {
	if c == nil || c.rdb == nil {
		return
	}
	if b, err := json.Marshal(resp); err == nil {
		_ = c.rdb.Set(ctx, c.key(resp.PartNumber), b, c.ttl).Err()
	}
}

// Invalidate drops the cached entry after a ledger mutation touching the part.
func (c *StockCache) Invalidate(ctx context.Context, partNumber string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.key(partNumber)).Err()
}
