package domain

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// Product 是目录中的商品，价格精确到分
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// ProductRepository 定义商品的持久化操作
type ProductRepository interface {
	FindAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, products []Product) error
}

// ProductCache 是按 id 缓存商品的读穿缓存
type ProductCache interface {
	Get(ctx context.Context, id string) (*Product, bool, error)
	Set(ctx context.Context, p *Product) error
}

// Locker 保证同一时刻只有一个实例执行目录初始化
type Locker interface {
	Lock(ctx context.Context) error
	Unlock() error
}

// DefaultCatalog 是空库时写入的初始商品
func DefaultCatalog() []Product {
	return []Product{
		{Name: "T-shirt", Price: decimal.RequireFromString("35.99")},
		{Name: "Jeans", Price: decimal.RequireFromString("65.50")},
		{Name: "Dress", Price: decimal.RequireFromString("80.75")},
	}
}
