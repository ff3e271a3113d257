// internal/service/cart/domain/cart.go
package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	promodomain "shopcart/internal/service/promotion/domain"
)

// MaxItemQuantity 限制单行商品数量，结算时按件展开计算
const MaxItemQuantity = 1000

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrNoCarts          = errors.New("no carts found")
	ErrQuantityLimit    = errors.Errorf("quantity per item cannot exceed %d", MaxItemQuantity)
)

// Product 是购物车行引用的商品快照
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// CartItem 是购物车中的一行
type CartItem struct {
	ID       string
	CartID   string
	Product  Product
	Quantity int
}

// Cart 是购物车聚合，UserID 为空表示匿名购物车
type Cart struct {
	ID     string
	UserID string
	Items  []CartItem
}

// FindItemByProduct 返回同一商品的已有行
func (c *Cart) FindItemByProduct(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddQuantity 增加行数量，超过上限时返回 ErrQuantityLimit 且不修改
func (ci *CartItem) AddQuantity(n int) error {
	if ci.Quantity+n > MaxItemQuantity {
		return ErrQuantityLimit
	}
	ci.Quantity += n
	return nil
}

// LineItems 把购物车转换为计价引擎的输入
func (c *Cart) LineItems() []promodomain.LineItem {
	items := make([]promodomain.LineItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, promodomain.LineItem{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			UnitPrice: it.Product.Price,
			Quantity:  it.Quantity,
		})
	}
	return items
}
