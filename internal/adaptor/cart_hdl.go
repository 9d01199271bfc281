package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"sweet-shop/internal/dto/request"
	"sweet-shop/internal/usecase"
	"sweet-shop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// All cart routes sit behind the session middleware: adding to a cart
// without signing in is refused before it reaches the service.
type CartHandler struct {
	service usecase.CartService
	log     *zap.Logger
}

func NewCartHandler(service usecase.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		log:     log.With(zap.String("handler", "cart")),
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Please sign in to use your cart")
		return
	}

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get cart")
		return
	}

	utils.ResponseSuccess(w, "Cart retrieved", cart)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Please sign in to add items to your cart")
		return
	}

	var req request.AddCartItemRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	cart, err := h.service.AddToCart(r.Context(), userID, req.ProductID)
	if err != nil {
		h.handleServiceError(w, err, "add to cart")
		return
	}

	utils.ResponseSuccess(w, "Added to cart", cart)
}

// UpdateItem handles PUT /api/cart/items/{productID}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Please sign in to use your cart")
		return
	}

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		utils.ResponseBadRequest(w, "Product ID is required", nil)
		return
	}

	var req request.UpdateCartItemRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), userID, productID, req.Quantity)
	if err != nil {
		h.handleServiceError(w, err, "update cart item")
		return
	}

	utils.ResponseSuccess(w, "Cart updated", cart)
}

// RemoveItem handles DELETE /api/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Please sign in to use your cart")
		return
	}

	productID := chi.URLParam(r, "productID")
	if productID == "" {
		utils.ResponseBadRequest(w, "Product ID is required", nil)
		return
	}

	cart, err := h.service.RemoveFromCart(r.Context(), userID, productID)
	if err != nil {
		h.handleServiceError(w, err, "remove from cart")
		return
	}

	utils.ResponseSuccess(w, "Removed from cart", cart)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Please sign in to use your cart")
		return
	}

	cart, err := h.service.ClearCart(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "clear cart")
		return
	}

	utils.ResponseSuccess(w, "Cart cleared", cart)
}

// handleServiceError maps service errors onto HTTP responses
func (h *CartHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "invalid product id"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
