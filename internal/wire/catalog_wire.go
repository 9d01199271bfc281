package wire

import (
	"sweet-shop/internal/adaptor"
	"sweet-shop/internal/data/repository"
	"sweet-shop/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/products - browse the catalog (anyone can view)
	r.Get("/api/products", catalogHandler.GetProducts)

	// Purchase needs a signed-in user
	r.With(middleware.AuthSession(repo.Session, log)).
		Post("/api/products/{id}/purchase", catalogHandler.PurchaseProduct)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/products", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log)) // Must be authenticated
		r.Use(middleware.Admin(repo.Profile, log))       // Must be admin

		r.Post("/", catalogHandler.CreateProduct)       // POST /api/admin/products
		r.Put("/{id}", catalogHandler.UpdateProduct)    // PUT /api/admin/products/{id}
		r.Delete("/{id}", catalogHandler.DeleteProduct) // DELETE /api/admin/products/{id}
	})
}
