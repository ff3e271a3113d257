package application

import "shopcart/internal/service/user/domain"

type CreateUserRequest struct {
	Name string `json:"name" validate:"max=255"`
	Type string `json:"type" validate:"required,oneof=COMMON VIP"`
}

type UserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Type: u.Tier.String()}
}
