package application

import "shopcart/internal/service/cart/domain"

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"min=1,max=1000"`
}

type ProductSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CartItemResponse struct {
	ID       string         `json:"id"`
	Quantity int            `json:"quantity"`
	Product  ProductSummary `json:"product"`
}

type CartResponse struct {
	ID     string             `json:"id"`
	UserID *string            `json:"userId"`
	Items  []CartItemResponse `json:"items"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func ToCartResponse(c *domain.Cart) CartResponse {
	resp := CartResponse{ID: c.ID, Items: make([]CartItemResponse, 0, len(c.Items))}
	if c.UserID != "" {
		userID := c.UserID
		resp.UserID = &userID
	}
	for _, it := range c.Items {
		resp.Items = append(resp.Items, CartItemResponse{
			ID:       it.ID,
			Quantity: it.Quantity,
			Product: ProductSummary{
				ID:    it.Product.ID,
				Name:  it.Product.Name,
				Price: it.Product.Price.Round(2).InexactFloat64(),
			},
		})
	}
	return resp
}

func ToCartResponses(carts []domain.Cart) []CartResponse {
	out := make([]CartResponse, 0, len(carts))
	for i := range carts {
		out = append(out, ToCartResponse(&carts[i]))
	}
	return out
}
