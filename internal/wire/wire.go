// internal/wire/wire.go
package wire

import (
	"net/http"

	"sweet-shop/internal/adaptor"
	"sweet-shop/internal/data/repository"
	"sweet-shop/internal/mail"
	"sweet-shop/internal/usecase"
	"sweet-shop/pkg/middleware"
	"sweet-shop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, mailer mail.Mailer, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, mailer, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, logger)
	wireCatalog(r, handler.Catalog, repo, logger)
	wireCart(r, handler.Cart, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
