package dto

import (
	"time"

	"sso-auth/internal/domain"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the client-facing user shape. The password hash never
// leaves the service.
type UserResponse struct {
	ID        domain.UserID `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
