package availability

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cx-tal-miterani/fare-workflow/internal/model"
)

// CachedClient wraps a Client with a Redis read-through cache on the two
// search calls. Sell, modify-sell and redemption-fee calls are never cached.
type CachedClient struct {
	inner Client
	rdb   *redis.Client
	ttl   time.Duration
}

// CacheConfig configures the Redis cache.
type CacheConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewCachedClient connects to Redis and wraps the given client. The
// connection is verified up front so a misconfigured cache fails at startup
// rather than on the first search.
func NewCachedClient(inner Client, cfg CacheConfig) (*CachedClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &CachedClient{inner: inner, rdb: rdb, ttl: ttl}, nil
}

func (c *CachedClient) Search(ctx context.Context, req model.SearchRequest, usePoints bool) (*model.AvailabilityData, error) {
	key := cacheKey("search", struct {
		Req       model.SearchRequest
		UsePoints bool
	}{req, usePoints})

	var cached model.AvailabilityData
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	data, err := c.inner.Search(ctx, req, usePoints)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, data)
	return data, nil
}

func (c *CachedClient) SearchLowFare(ctx context.Context, req model.LowFareSearchRequest) (*model.LowFareData, error) {
	key := cacheKey("lowfare", req)

	var cached model.LowFareData
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	data, err := c.inner.SearchLowFare(ctx, req)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, data)
	return data, nil
}

func (c *CachedClient) SellTrip(ctx context.Context, req SellRequest) (*model.SellResponse, error) {
	return c.inner.SellTrip(ctx, req)
}

func (c *CachedClient) ModifySellTrip(ctx context.Context, req ModifySellRequest) (*model.ModifySellResponse, error) {
	return c.inner.ModifySellTrip(ctx, req)
}

func (c *CachedClient) RedemptionFee(ctx context.Context, departure time.Time, loyaltyKind, tierCode string) (float64, error) {
	return c.inner.RedemptionFee(ctx, departure, loyaltyKind, tierCode)
}

// Close releases the Redis connection.
func (c *CachedClient) Close() error {
	return c.rdb.Close()
}

func (c *CachedClient) lookup(ctx context.Context, key string, out any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (c *CachedClient) store(ctx context.Context, key string, v any) {
	if v == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("availability cache: set %s failed: %v", key, err)
	}
}

func cacheKey(prefix string, v any) string {
	raw, _ := json.Marshal(v)
	sum := sha256.Sum256(raw)
	return "avail:" + prefix + ":" + hex.EncodeToString(sum[:])
}
