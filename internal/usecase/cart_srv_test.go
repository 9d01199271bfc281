package usecase

import (
	"context"
	"testing"
	"time"

	"sweet-shop/internal/data/entity"
	"sweet-shop/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func newCartTestService() (CartService, *repository.Repository) {
	repo := newFakeRepository()
	return NewCartService(repo, zap.NewNop()), repo
}

func seedProduct(repo *repository.Repository, name string, price string, stock int) *entity.Product {
	p, _ := decimal.NewFromString(price)
	product := &entity.Product{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:        name,
		Category:    entity.CategoryChocolate,
		Price:       p,
		Image:       "/placeholder.svg",
		Rating:      4.5,
		InStock:     stock,
		Description: "test product",
	}
	_ = repo.Product.Create(context.Background(), product)
	return product
}

func TestAddToCart_RepeatedAddAggregates(t *testing.T) {
	service, repo := newCartTestService()
	ctx := context.Background()
	userID := uuid.New()

	product := seedProduct(repo, "Dark Truffle", "12.50", 10)

	cart, err := service.AddToCart(ctx, userID, product.ID.String())
	if err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Fatalf("expected single line with quantity 1, got %+v", cart.Items)
	}

	cart, err = service.AddToCart(ctx, userID, product.ID.String())
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected one line item after repeated add, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", cart.Items[0].Quantity)
	}
	if cart.CartCount != 2 {
		t.Errorf("expected cart count 2, got %d", cart.CartCount)
	}
}

func TestAddToCart_SnapshotsProductFields(t *testing.T) {
	service, repo := newCartTestService()
	ctx := context.Background()
	userID := uuid.New()

	product := seedProduct(repo, "Sour Worms", "3.99", 10)

	cart, err := service.AddToCart(ctx, userID, product.ID.String())
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	item := cart.Items[0]
	if item.Name != "Sour Worms" {
		t.Errorf("expected snapshot name, got %q", item.Name)
	}
	if !item.Price.Equal(decimal.RequireFromString("3.99")) {
		t.Errorf("expected snapshot price 3.99, got %s", item.Price)
	}

	// A later price change must not rewrite the snapshot
	product.Price = decimal.RequireFromString("5.99")
	_ = repo.Product.Update(ctx, product)

	cart, err = service.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if !cart.Items[0].Price.Equal(decimal.RequireFromString("3.99")) {
		t.Errorf("snapshot price changed after product update: %s", cart.Items[0].Price)
	}
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	service, _ := newCartTestService()

	_, err := service.AddToCart(context.Background(), uuid.New(), uuid.New().String())
	if err == nil || err.Error() != "product not found" {
		t.Fatalf("expected product not found, got %v", err)
	}
}

func TestUpdateQuantity_ZeroOrBelowRemovesLine(t *testing.T) {
	service, repo := newCartTestService()
	ctx := context.Background()
	userID := uuid.New()

	product := seedProduct(repo, "Rainbow Pop", "2.00", 10)
	if _, err := service.AddToCart(ctx, userID, product.ID.String()); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	for _, quantity := range []int{0, -3} {
		cart, err := service.UpdateQuantity(ctx, userID, product.ID.String(), quantity)
		if err != nil {
			t.Fatalf("update quantity %d failed: %v", quantity, err)
		}
		if len(cart.Items) != 0 {
			t.Errorf("quantity %d should remove the line, got %d items", quantity, len(cart.Items))
		}
	}
}

func TestCartTotalInvariant(t *testing.T) {
	service, repo := newCartTestService()
	ctx := context.Background()
	userID := uuid.New()

	truffle := seedProduct(repo, "Dark Truffle", "12.50", 10)
	worms := seedProduct(repo, "Sour Worms", "3.99", 10)

	_, _ = service.AddToCart(ctx, userID, truffle.ID.String())
	_, _ = service.AddToCart(ctx, userID, truffle.ID.String())
	cart, err := service.AddToCart(ctx, userID, worms.ID.String())
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 2 * 12.50 + 1 * 3.99
	want := decimal.RequireFromString("28.99")
	if !cart.CartTotal.Equal(want) {
		t.Errorf("expected total %s, got %s", want, cart.CartTotal)
	}
	if cart.CartCount != 3 {
		t.Errorf("expected count 3, got %d", cart.CartCount)
	}
}

func TestClearCart_DeletesSnapshotRow(t *testing.T) {
	service, repo := newCartTestService()
	ctx := context.Background()
	userID := uuid.New()

	product := seedProduct(repo, "Candy Cane", "1.50", 10)
	if _, err := service.AddToCart(ctx, userID, product.ID.String()); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cart, err := service.ClearCart(ctx, userID)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(cart.Items) != 0 || cart.CartCount != 0 {
		t.Errorf("expected empty cart, got %+v", cart)
	}

	cartRepo := repo.Cart.(*fakeCartRepo)
	if cartRepo.deleteCalls == 0 {
		t.Error("expected the snapshot row to be deleted")
	}
	if _, ok := cartRepo.carts[userID]; ok {
		t.Error("snapshot row still present after clear")
	}
}

func TestRemoveLastItem_DeletesSnapshotRow(t *testing.T) {
	service, repo := newCartTestService()
	ctx := context.Background()
	userID := uuid.New()

	product := seedProduct(repo, "Candy Cane", "1.50", 10)
	if _, err := service.AddToCart(ctx, userID, product.ID.String()); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cart, err := service.RemoveFromCart(ctx, userID, product.ID.String())
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(cart.Items))
	}

	cartRepo := repo.Cart.(*fakeCartRepo)
	if _, ok := cartRepo.carts[userID]; ok {
		t.Error("snapshot row should be gone once the cart empties")
	}
}

func TestCartIsolationBetweenUsers(t *testing.T) {
	service, repo := newCartTestService()
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	product := seedProduct(repo, "Gummy Bears", "4.25", 10)

	if _, err := service.AddToCart(ctx, alice, product.ID.String()); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	bobCart, err := service.GetCart(ctx, bob)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(bobCart.Items) != 0 {
		t.Errorf("expected empty cart for other user, got %d items", len(bobCart.Items))
	}

	aliceCart, err := service.GetCart(ctx, alice)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(aliceCart.Items) != 1 {
		t.Errorf("expected 1 item for original user, got %d", len(aliceCart.Items))
	}
}

// Full walkthrough: add twice, set quantity to one, remove, verify empty.
func TestCartLifecycle(t *testing.T) {
	service, repo := newCartTestService()
	ctx := context.Background()
	userID := uuid.New()

	product := seedProduct(repo, "Honey Drops", "100.00", 5)

	cart, err := service.AddToCart(ctx, userID, product.ID.String())
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	cart, err = service.AddToCart(ctx, userID, product.ID.String())
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if cart.CartCount != 2 || !cart.CartTotal.Equal(decimal.RequireFromString("200.00")) {
		t.Fatalf("after two adds: count=%d total=%s", cart.CartCount, cart.CartTotal)
	}

	cart, err = service.UpdateQuantity(ctx, userID, product.ID.String(), 1)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if cart.CartCount != 1 || !cart.CartTotal.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("after update: count=%d total=%s", cart.CartCount, cart.CartTotal)
	}

	cart, err = service.RemoveFromCart(ctx, userID, product.ID.String())
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(cart.Items) != 0 || cart.CartCount != 0 || !cart.CartTotal.Equal(decimal.Zero) {
		t.Fatalf("after remove: %+v", cart)
	}
}
