package adapter

import (
	"context"

	"shopcart/internal/service/cart/domain"
	"shopcart/internal/service/cart/domain/port"
	productapp "shopcart/internal/service/product/application"
	userdomain "shopcart/internal/service/user/domain"
)

// ProductAdapter 是 port.ProductFinder 基于商品服务的实现
type ProductAdapter struct {
	products *productapp.ProductService
}

func NewProductAdapter(products *productapp.ProductService) *ProductAdapter {
	return &ProductAdapter{products: products}
}

func (a *ProductAdapter) FindProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := a.products.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.Product{ID: p.ID, Name: p.Name, Price: p.Price}, nil
}

// CustomerAdapter 是 port.CustomerFinder 基于用户仓储的实现。
// 用户服务创建用户时依赖购物车服务，这里直接读仓储以免形成环
type CustomerAdapter struct {
	users userdomain.UserRepository
}

func NewCustomerAdapter(users userdomain.UserRepository) *CustomerAdapter {
	return &CustomerAdapter{users: users}
}

func (a *CustomerAdapter) FindCustomer(ctx context.Context, id string) (*port.Customer, error) {
	u, err := a.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &port.Customer{ID: u.ID, Tier: u.Tier}, nil
}
