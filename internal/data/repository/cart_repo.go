package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"sweet-shop/internal/data/entity"
	"sweet-shop/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CartRepository stores one snapshot row per user: the full serialized
// list of line items, rewritten on every mutation and deleted when the
// cart empties. No row exists for users without a cart.
type CartRepository interface {
	Load(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error)
	Save(ctx context.Context, userID uuid.UUID, items []entity.CartItem) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

func (r *cartRepository) Load(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error) {
	query := `SELECT items FROM carts WHERE user_id = $1`

	var raw []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(&raw)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to load cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("load cart for %s: %w", userID.String(), err)
	}

	var items []entity.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// A corrupt snapshot falls back to an empty cart rather than
		// locking the user out of theirs.
		r.log.Warn("Corrupt cart snapshot, starting empty",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, nil
	}

	return items, nil
}

func (r *cartRepository) Save(ctx context.Context, userID uuid.UUID, items []entity.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart for %s: %w", userID.String(), err)
	}

	query := `
		INSERT INTO carts (user_id, items, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET items = EXCLUDED.items, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, userID, raw); err != nil {
		r.log.Error("Failed to save cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("save cart for %s: %w", userID.String(), err)
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM carts WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		r.log.Error("Failed to delete cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("delete cart for %s: %w", userID.String(), err)
	}

	return nil
}
