package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopcart/internal/service/cart/domain"
)

// GormCartRepository 是 CartRepository 的 GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// withItems 预加载购物车的行和商品，行按加入顺序排列
func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at, id") }).
		Preload("Items.Product")
}

func (r *GormCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(FromDomainCart(cart)).Error
	if err != nil {
		return errors.Wrap(err, "insert cart")
	}
	return nil
}

func (r *GormCartRepository) FindByID(ctx context.Context, id string) (*domain.Cart, error) {
	var model CartModel
	err := withItems(r.db.WithContext(ctx)).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartNotFound
		}
		return nil, errors.Wrapf(err, "query cart %s", id)
	}
	return ToDomainCart(&model), nil
}

func (r *GormCartRepository) FindAll(ctx context.Context) ([]domain.Cart, error) {
	var models []CartModel
	if err := withItems(r.db.WithContext(ctx)).Order("created_at, id").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "query carts")
	}
	carts := make([]domain.Cart, 0, len(models))
	for i := range models {
		carts = append(carts, *ToDomainCart(&models[i]))
	}
	return carts, nil
}

// SaveItem 已存在的行只更新数量，否则插入新行
func (r *GormCartRepository) SaveItem(ctx context.Context, item *domain.CartItem) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&CartItemModel{}).Where("id = ?", item.ID).Update("quantity", item.Quantity)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update cart item %s", item.ID)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	if err := db.Omit(clause.Associations).Create(FromDomainCartItem(item)).Error; err != nil {
		return errors.Wrap(err, "insert cart item")
	}
	return nil
}

func (r *GormCartRepository) FindItem(ctx context.Context, cartID, itemID string) (*domain.CartItem, error) {
	var model CartItemModel
	err := r.db.WithContext(ctx).Preload("Product").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, errors.Wrapf(err, "query cart item %s", itemID)
	}
	return ToDomainCartItem(&model), nil
}

func (r *GormCartRepository) DeleteItem(ctx context.Context, itemID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&CartItemModel{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete cart item %s", itemID)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *GormCartRepository) AssignUser(ctx context.Context, cartID, userID string) error {
	res := r.db.WithContext(ctx).Model(&CartModel{}).Where("id = ?", cartID).Update("user_id", userID)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "assign cart %s", cartID)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCartNotFound
	}
	return nil
}
