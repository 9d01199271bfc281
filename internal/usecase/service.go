package usecase

import (
	"sweet-shop/internal/data/repository"
	"sweet-shop/internal/mail"
	"sweet-shop/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Catalog CatalogService
	Cart    CartService
}

func NewService(repo *repository.Repository, config *utils.Config, mailer mail.Mailer, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, mailer, log),
		Catalog: NewCatalogService(repo, log),
		Cart:    NewCartService(repo, log),
	}
}
