package wire

import (
	"sweet-shop/internal/adaptor"
	"sweet-shop/internal/data/repository"
	"sweet-shop/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCart(
	r chi.Router,
	cartHandler *adaptor.CartHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// The whole cart is scoped to the signed-in user; no anonymous carts
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/", cartHandler.GetCart)                         // GET /api/cart
		r.Delete("/", cartHandler.ClearCart)                    // DELETE /api/cart
		r.Post("/items", cartHandler.AddItem)                   // POST /api/cart/items
		r.Put("/items/{productID}", cartHandler.UpdateItem)     // PUT /api/cart/items/{productID}
		r.Delete("/items/{productID}", cartHandler.RemoveItem)  // DELETE /api/cart/items/{productID}
	})
}
