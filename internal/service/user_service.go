package service

import (
	"context"

	"sso-auth/internal/domain"
)

type UserService interface {
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
}
