package repository

import (
	"sweet-shop/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Confirmation ConfirmationRepository
	Profile      ProfileRepository
	Product      ProductRepository
	Cart         CartRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Confirmation: NewConfirmationRepository(db, log),
		Profile:      NewProfileRepository(db, log),
		Product:      NewProductRepository(db, log),
		Cart:         NewCartRepository(db, log),
	}
}
