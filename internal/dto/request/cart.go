package request

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
}

// Quantity may be zero or negative; that is the remove path.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
