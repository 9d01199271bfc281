package wire

import (
	"sweet-shop/internal/adaptor"
	"sweet-shop/internal/data/repository"
	"sweet-shop/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/resend-confirmation", authHandler.ResendConfirmation)
	r.Post("/api/verify-email", authHandler.VerifyEmail)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(repo.Session, log)).Post("/api/logout", authHandler.Logout)
	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/me", authHandler.Me)
}
