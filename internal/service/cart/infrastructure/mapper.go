package infrastructure

import "shopcart/internal/service/cart/domain"

// ToDomainCart 将数据库模型转换为领域模型
func ToDomainCart(m *CartModel) *domain.Cart {
	cart := &domain.Cart{ID: m.ID, Items: make([]domain.CartItem, 0, len(m.Items))}
	if m.UserID != nil {
		cart.UserID = *m.UserID
	}
	for i := range m.Items {
		cart.Items = append(cart.Items, *ToDomainCartItem(&m.Items[i]))
	}
	return cart
}

func ToDomainCartItem(m *CartItemModel) *domain.CartItem {
	return &domain.CartItem{
		ID:     m.ID,
		CartID: m.CartID,
		Product: domain.Product{
			ID:    m.Product.ID,
			Name:  m.Product.Name,
			Price: m.Product.Price,
		},
		Quantity: m.Quantity,
	}
}

// FromDomainCart 只转换购物车本身，行通过 SaveItem 单独保存
func FromDomainCart(c *domain.Cart) *CartModel {
	m := &CartModel{ID: c.ID}
	if c.UserID != "" {
		userID := c.UserID
		m.UserID = &userID
	}
	return m
}

func FromDomainCartItem(it *domain.CartItem) *CartItemModel {
	return &CartItemModel{
		ID:        it.ID,
		CartID:    it.CartID,
		ProductID: it.Product.ID,
		Quantity:  it.Quantity,
	}
}
