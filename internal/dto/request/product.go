package request

// Numeric fields are typed and range-checked here; the storefront form
// used to let unparseable numbers through as NaN.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Category    string  `json:"category" validate:"required,oneof=chocolate gummy hard-candy lollipops seasonal"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       string  `json:"image,omitempty"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	InStock     int     `json:"in_stock" validate:"gte=0"`
	Description string  `json:"description" validate:"required"`
}

type ProductUpdateRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,oneof=chocolate gummy hard-candy lollipops seasonal"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Image       *string  `json:"image,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	InStock     *int     `json:"in_stock,omitempty" validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty"`
}

type PurchaseRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}
