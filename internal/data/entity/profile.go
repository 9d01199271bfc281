package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the authorization record paired one-to-one with a user
// account. ID matches the user id. Exactly one row per user, lazily
// created on the first admin-status check if absent.
type Profile struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	FullName  *string   `db:"full_name"`
	AvatarURL *string   `db:"avatar_url"`
	IsAdmin   bool      `db:"is_admin"`
	CreatedAt time.Time `db:"created_at"`
}
