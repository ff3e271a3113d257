package infrastructure

import (
	promodomain "shopcart/internal/service/promotion/domain"
	"shopcart/internal/service/user/domain"
)

// UserModel 对应数据库中的 users 表
type UserModel struct {
	ID   string `gorm:"primaryKey;type:varchar(36)"`
	Name string `gorm:"size:255"`
	Type string `gorm:"size:16;not null;default:COMMON"`
}

func (UserModel) TableName() string {
	return "users"
}

// ToDomainUser 将数据库模型转换为领域模型，无法识别的类型按普通用户处理
func ToDomainUser(m *UserModel) *domain.User {
	tier, ok := promodomain.ParseUserTier(m.Type)
	if !ok {
		tier = promodomain.TierCommon
	}
	return &domain.User{ID: m.ID, Name: m.Name, Tier: tier}
}

func FromDomainUser(u *domain.User) *UserModel {
	return &UserModel{ID: u.ID, Name: u.Name, Type: u.Tier.String()}
}
