package infrastructure

import (
	"github.com/shopspring/decimal"

	"shopcart/internal/service/product/domain"
)

// ProductModel 对应数据库中的 products 表
type ProductModel struct {
	ID    string          `gorm:"primaryKey;type:varchar(36)"`
	Name  string          `gorm:"uniqueIndex;size:255;not null"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName 指定 GORM 应该使用的表名
func (ProductModel) TableName() string {
	return "products"
}

// ToDomainProduct 将数据库模型转换为领域模型
func ToDomainProduct(m *ProductModel) *domain.Product {
	if m == nil {
		return nil
	}
	return &domain.Product{ID: m.ID, Name: m.Name, Price: m.Price}
}

// FromDomainProduct 将领域模型转换为数据库模型
func FromDomainProduct(p *domain.Product) *ProductModel {
	return &ProductModel{ID: p.ID, Name: p.Name, Price: p.Price}
}
