// internal/service/cart/domain/repository.go
package domain

import "context"

// CartRepository 定义了购物车聚合的持久化接口，由基础设施层实现
type CartRepository interface {
	// Create 保存一个新的空购物车
	Create(ctx context.Context, cart *Cart) error

	// FindByID 加载购物车及其所有行和商品
	FindByID(ctx context.Context, id string) (*Cart, error)

	FindAll(ctx context.Context) ([]Cart, error)

	// SaveItem 新增或更新一行
	SaveItem(ctx context.Context, item *CartItem) error

	// FindItem 查找属于指定购物车的一行
	FindItem(ctx context.Context, cartID, itemID string) (*CartItem, error)

	DeleteItem(ctx context.Context, itemID string) error

	AssignUser(ctx context.Context, cartID, userID string) error
}
