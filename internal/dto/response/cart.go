package response

import (
	"sweet-shop/internal/data/entity"

	"github.com/shopspring/decimal"
)

type CartItemResponse struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	CartCount int                `json:"cart_count"`
	CartTotal decimal.Decimal    `json:"cart_total"`
}

// CartToResponse derives count and total from the line items:
// count is the sum of quantities, total the sum of price times quantity.
func CartToResponse(items []entity.CartItem) *CartResponse {
	resp := &CartResponse{
		Items:     make([]CartItemResponse, len(items)),
		CartTotal: decimal.Zero,
	}

	for i, item := range items {
		resp.Items[i] = CartItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			Category:  item.Category,
			Quantity:  item.Quantity,
		}
		resp.CartCount += item.Quantity
		resp.CartTotal = resp.CartTotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return resp
}
