// internal/pkg/redis/client.go
package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"
)

// Client 封装 go-redis 的 UniversalClient，单地址为单机模式，多地址为集群模式
type Client struct {
	client goredis.UniversalClient
}

// NewClient 连接 redis 并做一次 PING。addrs 为逗号拆分后的地址列表
func NewClient(addrs []string) (*Client, error) {
	if len(addrs) == 0 {
		return nil, errors.New("redis: no address configured")
	}
	rdb := goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs:        addrs,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrapf(err, "ping redis %v", addrs)
	}

	zlog.Info().Strs("addrs", addrs).Msg("Redis connected")
	return &Client{client: rdb}, nil
}

// NewFromUniversal 包装已有的客户端
func NewFromUniversal(rdb goredis.UniversalClient) *Client {
	return &Client{client: rdb}
}

// GetClient 返回底层客户端
func (c *Client) GetClient() goredis.UniversalClient {
	return c.client
}

// Close 关闭连接池
func (c *Client) Close() error {
	return c.client.Close()
}
