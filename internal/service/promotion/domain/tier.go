package domain

import "strings"

// UserTier 定义了用户的会员等级，它决定了哪些促销可以参与比价。
type UserTier string

const (
	TierCommon UserTier = "COMMON" // 普通用户
	TierVIP    UserTier = "VIP"    // VIP 用户，可额外参与 VIP 折扣
)

// ParseUserTier 将外部输入的字符串解析为 UserTier，大小写不敏感。
func ParseUserTier(s string) (UserTier, bool) {
	switch UserTier(strings.ToUpper(strings.TrimSpace(s))) {
	case TierCommon:
		return TierCommon, true
	case TierVIP:
		return TierVIP, true
	default:
		return "", false
	}
}

func (t UserTier) String() string {
	return string(t)
}
