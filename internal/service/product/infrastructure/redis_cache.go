package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"shopcart/internal/pkg/redis"
	"shopcart/internal/service/product/domain"
)

const productKeyPrefix = "shop:product:"

type cachedProduct struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// RedisProductCache 把商品以 JSON 形式缓存到 redis
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProductCache(client *redis.Client, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{client: client, ttl: ttl}
}

func (c *RedisProductCache) Get(ctx context.Context, id string) (*domain.Product, bool, error) {
	raw, err := c.client.GetClient().Get(ctx, productKeyPrefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get product")
	}
	var cp cachedProduct
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, false, errors.Wrap(err, "decode cached product")
	}
	return &domain.Product{ID: cp.ID, Name: cp.Name, Price: cp.Price}, true, nil
}

func (c *RedisProductCache) Set(ctx context.Context, p *domain.Product) error {
	raw, err := json.Marshal(cachedProduct{ID: p.ID, Name: p.Name, Price: p.Price})
	if err != nil {
		return errors.Wrap(err, "encode product")
	}
	if err := c.client.GetClient().Set(ctx, productKeyPrefix+p.ID, raw, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set product")
	}
	return nil
}
