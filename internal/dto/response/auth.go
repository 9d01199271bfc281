package response

import (
	"time"

	"sweet-shop/internal/data/entity"
)

type AuthResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

func AuthToResponse(user *entity.User, isAdmin bool, session *entity.Session) *AuthResponse {
	resp := &AuthResponse{
		UserID:   user.ID.String(),
		Email:    user.Email,
		FullName: user.FullName,
		IsAdmin:  isAdmin,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
