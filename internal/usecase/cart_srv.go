package usecase

import (
	"context"
	"fmt"

	"sweet-shop/internal/data/entity"
	"sweet-shop/internal/data/repository"
	"sweet-shop/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService keeps one cart per signed-in user. Line items snapshot the
// product's display fields at add time. Every mutation rewrites the
// stored snapshot; an emptied cart removes it entirely.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error)
	AddToCart(ctx context.Context, userID uuid.UUID, productID string) (*response.CartResponse, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) (*response.CartResponse, error)
	RemoveFromCart(ctx context.Context, userID uuid.UUID, productID string) (*response.CartResponse, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error)
}

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCartService(
	repo *repository.Repository,
	log *zap.Logger,
) CartService {
	return &cartService{
		repo: repo,
		log:  log.With(zap.String("service", "cart")),
	}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	items, err := s.repo.Cart.Load(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("load cart: %w", err)
	}

	return response.CartToResponse(items), nil
}

// AddToCart increments the quantity when the product is already a line
// item, otherwise appends a new line with quantity 1.
func (s *cartService) AddToCart(ctx context.Context, userID uuid.UUID, productID string) (*response.CartResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		s.log.Warn("Invalid product ID format", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get product for cart", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product not found")
	}

	items, err := s.repo.Cart.Load(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("load cart: %w", err)
	}

	found := false
	for i := range items {
		if items[i].ProductID == id {
			items[i].Quantity++
			found = true
			break
		}
	}

	if !found {
		// Snapshot of the product's display fields at add time
		items = append(items, entity.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Category:  string(product.Category),
			Quantity:  1,
		})
	}

	if err := s.persist(ctx, userID, items); err != nil {
		return nil, err
	}

	s.log.Info("Item added to cart",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID),
		zap.String("name", product.Name),
	)

	return response.CartToResponse(items), nil
}

// UpdateQuantity sets a line item's quantity; zero or below removes the
// line, same as RemoveFromCart.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) (*response.CartResponse, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, userID, productID)
	}

	id, err := uuid.Parse(productID)
	if err != nil {
		s.log.Warn("Invalid product ID format", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	items, err := s.repo.Cart.Load(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("load cart: %w", err)
	}

	for i := range items {
		if items[i].ProductID == id {
			items[i].Quantity = quantity
		}
	}

	if err := s.persist(ctx, userID, items); err != nil {
		return nil, err
	}

	return response.CartToResponse(items), nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID uuid.UUID, productID string) (*response.CartResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		s.log.Warn("Invalid product ID format", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	items, err := s.repo.Cart.Load(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("load cart: %w", err)
	}

	kept := items[:0]
	for _, item := range items {
		if item.ProductID != id {
			kept = append(kept, item)
		}
	}

	if err := s.persist(ctx, userID, kept); err != nil {
		return nil, err
	}

	s.log.Info("Item removed from cart",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID),
	)

	return response.CartToResponse(kept), nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	if err := s.repo.Cart.Delete(ctx, userID); err != nil {
		s.log.Error("Failed to clear cart", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	s.log.Info("Cart cleared", zap.String("user_id", userID.String()))

	return response.CartToResponse(nil), nil
}

// persist rewrites the user's snapshot, dropping the row entirely when
// the cart has emptied.
func (s *cartService) persist(ctx context.Context, userID uuid.UUID, items []entity.CartItem) error {
	if len(items) == 0 {
		if err := s.repo.Cart.Delete(ctx, userID); err != nil {
			s.log.Error("Failed to delete empty cart", zap.Error(err), zap.String("user_id", userID.String()))
			return fmt.Errorf("delete cart: %w", err)
		}
		return nil
	}

	if err := s.repo.Cart.Save(ctx, userID, items); err != nil {
		s.log.Error("Failed to save cart", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("save cart: %w", err)
	}

	return nil
}
