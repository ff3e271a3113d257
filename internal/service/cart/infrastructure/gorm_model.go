package infrastructure

import (
	"time"

	productinfra "shopcart/internal/service/product/infrastructure"
)

// CartModel 对应数据库中的 cart 表
type CartModel struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)"`
	UserID    *string `gorm:"type:varchar(36);index"`
	CreatedAt time.Time
	// 关联关系
	Items []CartItemModel `gorm:"foreignKey:CartID"`
}

func (CartModel) TableName() string {
	return "cart"
}

// CartItemModel 对应数据库中的 cart_items 表
type CartItemModel struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	CartID    string `gorm:"type:varchar(36);index;not null"`
	ProductID string `gorm:"type:varchar(36);not null"`
	Quantity  int    `gorm:"not null;default:1"`
	CreatedAt time.Time
	// 关联关系
	Product productinfra.ProductModel `gorm:"foreignKey:ProductID"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}
