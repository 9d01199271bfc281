package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one line of a user's cart. Name, price, image and category
// are a snapshot copied from the product at add time; later catalog edits
// do not rewrite items already in a cart.
//
// The JSON tags double as the persisted snapshot format: a cart is stored
// as one serialized list of these records keyed by user id.
type CartItem struct {
	ProductID uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
}
