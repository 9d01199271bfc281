package usecase

import (
	"context"
	"fmt"
	"time"

	"sweet-shop/internal/data/entity"
	"sweet-shop/internal/data/repository"
	"sweet-shop/internal/dto/request"
	"sweet-shop/internal/dto/response"
	"sweet-shop/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// placeholderImage stands in when a product is created without one.
const placeholderImage = "/placeholder.svg"

// Every mutation answers with the freshly re-read full list: the
// storefront refetches after each write instead of patching local state.
type CatalogService interface {
	GetProducts(ctx context.Context, filter repository.ProductFilter) ([]response.ProductResponse, error)
	AddProduct(ctx context.Context, req *request.ProductRequest) ([]response.ProductResponse, error)
	UpdateProduct(ctx context.Context, productID string, req *request.ProductUpdateRequest) ([]response.ProductResponse, error)
	DeleteProduct(ctx context.Context, productID string) ([]response.ProductResponse, error)
	PurchaseProduct(ctx context.Context, productID string, quantity int) ([]response.ProductResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(
	repo *repository.Repository,
	log *zap.Logger,
) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetProducts(ctx context.Context, filter repository.ProductFilter) ([]response.ProductResponse, error) {
	products, err := s.repo.Product.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to get products",
			zap.Error(err),
			zap.String("category", filter.Category),
			zap.String("search", filter.Search),
		)
		return nil, fmt.Errorf("get products: %w", err)
	}

	s.log.Info("Products retrieved",
		zap.Int("count", len(products)),
		zap.String("category", filter.Category),
		zap.String("search", filter.Search),
	)

	return response.ProductsToResponse(products), nil
}

func (s *catalogService) AddProduct(ctx context.Context, req *request.ProductRequest) ([]response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	image := req.Image
	if image == "" {
		image = placeholderImage
	}

	product := &entity.Product{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:        req.Name,
		Category:    entity.ProductCategory(req.Category),
		Price:       decimal.NewFromFloat(req.Price),
		Image:       image,
		Rating:      req.Rating,
		InStock:     req.InStock,
		Description: req.Description,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to add product", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("add product: %w", err)
	}

	s.log.Info("Product added",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)

	return s.refetch(ctx)
}

func (s *catalogService) UpdateProduct(ctx context.Context, productID string, req *request.ProductUpdateRequest) ([]response.ProductResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		s.log.Warn("Invalid product ID format", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update product validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get product for update", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = entity.ProductCategory(*req.Category)
	}
	if req.Price != nil {
		product.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.Image != nil {
		product.Image = *req.Image
		if product.Image == "" {
			product.Image = placeholderImage
		}
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.Description != nil {
		product.Description = *req.Description
	}

	if err := s.repo.Product.Update(ctx, product); err != nil {
		s.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.log.Info("Product updated", zap.String("product_id", productID))

	return s.refetch(ctx)
}

func (s *catalogService) DeleteProduct(ctx context.Context, productID string) ([]response.ProductResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		s.log.Warn("Invalid product ID format", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	if err := s.repo.Product.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete product", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("delete product: %w", err)
	}

	return s.refetch(ctx)
}

// PurchaseProduct validates stock before writing: an insufficient stock
// count fails without touching the row.
func (s *catalogService) PurchaseProduct(ctx context.Context, productID string, quantity int) ([]response.ProductResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		s.log.Warn("Invalid product ID format", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get product for purchase", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	if product.InStock < quantity {
		s.log.Warn("Purchase rejected, not enough stock",
			zap.String("product_id", productID),
			zap.Int("in_stock", product.InStock),
			zap.Int("quantity", quantity),
		)
		return nil, fmt.Errorf("not enough stock available")
	}

	// The decrement re-checks stock in the WHERE clause; a concurrent
	// purchase can still win the row between read and write.
	ok, err := s.repo.Product.DecrementStock(ctx, id, quantity)
	if err != nil {
		s.log.Error("Failed to decrement stock", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("purchase product: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("not enough stock available")
	}

	s.log.Info("Product purchased",
		zap.String("product_id", productID),
		zap.String("name", product.Name),
		zap.Int("quantity", quantity),
	)

	return s.refetch(ctx)
}

func (s *catalogService) refetch(ctx context.Context) ([]response.ProductResponse, error) {
	products, err := s.repo.Product.FindAll(ctx, repository.ProductFilter{})
	if err != nil {
		s.log.Error("Failed to refetch products", zap.Error(err))
		return nil, fmt.Errorf("refetch products: %w", err)
	}
	return response.ProductsToResponse(products), nil
}
