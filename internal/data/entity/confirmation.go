package entity

import (
	"time"

	"github.com/google/uuid"
)

// Confirmation is the single-use token mailed out to verify an email
// address. Sign-in is blocked until one is redeemed.
type Confirmation struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Email     string     `db:"email"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
}
