package repository

import (
	"context"
	"fmt"

	"sweet-shop/internal/data/entity"
	"sweet-shop/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
}

type profileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProfileRepository(db database.PgxIface, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: log.With(zap.String("repository", "profile")),
	}
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	// ON CONFLICT keeps the one-row-per-user invariant when two requests
	// race to lazily create the same profile.
	query := `
		INSERT INTO profiles (id, email, full_name, avatar_url, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.Email,
		profile.FullName,
		profile.AvatarURL,
		profile.IsAdmin,
		profile.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create profile",
			zap.Error(err),
			zap.String("user_id", profile.ID.String()),
		)
		return fmt.Errorf("create profile %s: %w", profile.ID.String(), err)
	}

	return nil
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	query := `
		SELECT id, email, full_name, avatar_url, is_admin, created_at
		FROM profiles
		WHERE id = $1
	`

	var profile entity.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Email,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.IsAdmin,
		&profile.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find profile",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find profile %s: %w", id.String(), err)
	}

	return &profile, nil
}
