package domain

import (
	"context"

	"github.com/pkg/errors"

	promodomain "shopcart/internal/service/promotion/domain"
)

var ErrUserNotFound = errors.New("user not found")

// User 是下单的顾客，Tier 决定可用的促销
type User struct {
	ID   string
	Name string
	Tier promodomain.UserTier
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
}

// CartCreator 在用户注册后为其开一个空购物车
type CartCreator interface {
	CreateForUser(ctx context.Context, userID string) error
}
