package response

import (
	"time"

	"sweet-shop/internal/data/entity"

	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
	InStock     int             `json:"in_stock"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ProductToResponse(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Category:    string(product.Category),
		Price:       product.Price,
		Image:       product.Image,
		Rating:      product.Rating,
		InStock:     product.InStock,
		Description: product.Description,
		CreatedAt:   product.CreatedAt,
	}
}

func ProductsToResponse(products []*entity.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		responses[i] = ProductToResponse(product)
	}
	return responses
}
