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

type ConfirmationRepository interface {
	Create(ctx context.Context, confirmation *entity.Confirmation) error
	FindValidToken(ctx context.Context, token string) (*entity.Confirmation, error)
	MarkAsUsed(ctx context.Context, id uuid.UUID) error
}

type confirmationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewConfirmationRepository(db database.PgxIface, log *zap.Logger) ConfirmationRepository {
	return &confirmationRepository{
		db:  db,
		log: log.With(zap.String("repository", "confirmation")),
	}
}

func (r *confirmationRepository) Create(ctx context.Context, confirmation *entity.Confirmation) error {
	query := `
		INSERT INTO confirmations (id, user_id, email, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		confirmation.ID,
		confirmation.UserID,
		confirmation.Email,
		confirmation.Token,
		confirmation.ExpiresAt,
		confirmation.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create confirmation token",
			zap.Error(err),
			zap.String("email", confirmation.Email),
		)
		return fmt.Errorf("create confirmation for %s: %w", confirmation.Email, err)
	}

	return nil
}

func (r *confirmationRepository) FindValidToken(ctx context.Context, token string) (*entity.Confirmation, error) {
	query := `
		SELECT id, user_id, email, token, expires_at, used_at, created_at
		FROM confirmations
		WHERE token = $1
		  AND used_at IS NULL
		  AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var confirmation entity.Confirmation
	err := r.db.QueryRow(ctx, query, token).Scan(
		&confirmation.ID,
		&confirmation.UserID,
		&confirmation.Email,
		&confirmation.Token,
		&confirmation.ExpiresAt,
		&confirmation.UsedAt,
		&confirmation.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find confirmation token",
			zap.Error(err),
		)
		return nil, fmt.Errorf("find confirmation token: %w", err)
	}

	return &confirmation, nil
}

func (r *confirmationRepository) MarkAsUsed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE confirmations
		SET used_at = NOW()
		WHERE id = $1 AND used_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark confirmation as used",
			zap.Error(err),
			zap.String("confirmation_id", id.String()),
		)
		return fmt.Errorf("mark confirmation %s as used: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("confirmation %s not found", id.String())
	}

	return nil
}
