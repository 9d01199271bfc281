package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"sweet-shop/internal/data/repository"
	"sweet-shop/internal/dto/request"
	"sweet-shop/internal/usecase"
	"sweet-shop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetProducts handles GET /api/products
func (h *CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.ProductFilter{
		Search: query.Get("search"),
	}

	// "all" means no category filter, same as the storefront's filter bar
	if category := query.Get("category"); category != "" && category != "all" {
		switch category {
		case "chocolate", "gummy", "hard-candy", "lollipops", "seasonal":
			filter.Category = category
		default:
			// Unknown category, ignore filter
			h.log.Warn("Invalid category filter", zap.String("category", category))
		}
	}

	products, err := h.service.GetProducts(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, err, "get products")
		return
	}

	utils.ResponseSuccess(w, "Products retrieved successfully", products)
}

// CreateProduct handles POST /api/admin/products (admin only)
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.ProductRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	products, err := h.service.AddProduct(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product added successfully", products)
}

// UpdateProduct handles PUT /api/admin/products/{id} (admin only)
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		utils.ResponseBadRequest(w, "Product ID is required", nil)
		return
	}

	var req request.ProductUpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	products, err := h.service.UpdateProduct(r.Context(), productID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated successfully", products)
}

// DeleteProduct handles DELETE /api/admin/products/{id} (admin only)
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		utils.ResponseBadRequest(w, "Product ID is required", nil)
		return
	}

	products, err := h.service.DeleteProduct(r.Context(), productID)
	if err != nil {
		h.handleServiceError(w, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted successfully", products)
}

// PurchaseProduct handles POST /api/products/{id}/purchase
func (h *CatalogHandler) PurchaseProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	if productID == "" {
		utils.ResponseBadRequest(w, "Product ID is required", nil)
		return
	}

	// Quantity defaults to 1 when the body is empty
	req := request.PurchaseRequest{Quantity: 1}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	products, err := h.service.PurchaseProduct(r.Context(), productID, req.Quantity)
	if err != nil {
		h.handleServiceError(w, err, "purchase product")
		return
	}

	utils.ResponseSuccess(w, "Purchase successful", products)
}

// handleServiceError maps service errors onto HTTP responses
func (h *CatalogHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "not enough stock"):
		h.log.Warn(operation+" failed - insufficient stock", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid product id"),
		strings.Contains(errMsg, "quantity must be positive"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
