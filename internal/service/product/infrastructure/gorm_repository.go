package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"shopcart/internal/service/product/domain"
)

// GormProductRepository 是 ProductRepository 的 GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var models []ProductModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	products := make([]domain.Product, 0, len(models))
	for i := range models {
		products = append(products, *ToDomainProduct(&models[i]))
	}
	return products, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, errors.Wrapf(err, "query product %s", id)
	}
	return ToDomainProduct(&model), nil
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&ProductModel{}).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return n, nil
}

// CreateBatch 在一个事务里写入多个商品
func (r *GormProductRepository) CreateBatch(ctx context.Context, products []domain.Product) error {
	models := make([]*ProductModel, 0, len(products))
	for i := range products {
		models = append(models, FromDomainProduct(&products[i]))
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return errors.Wrap(err, "insert products")
	}
	return nil
}
