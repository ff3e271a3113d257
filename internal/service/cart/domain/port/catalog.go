package port

import (
	"context"

	"shopcart/internal/service/cart/domain"
	promodomain "shopcart/internal/service/promotion/domain"
)

// ProductFinder 是商品目录的出站端口
type ProductFinder interface {
	FindProduct(ctx context.Context, id string) (*domain.Product, error)
}

// Customer 是结算时需要的用户信息
type Customer struct {
	ID   string
	Tier promodomain.UserTier
}

// CustomerFinder 是用户服务的出站端口
type CustomerFinder interface {
	FindCustomer(ctx context.Context, id string) (*Customer, error)
}
