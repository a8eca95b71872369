package impl

import (
	"context"
	"errors"

	"sso-auth/internal/domain"
	"sso-auth/internal/store"
)

type UserServiceImpl struct {
	Store *store.Store
}

func NewUserServiceImpl(st *store.Store) *UserServiceImpl {
	return &UserServiceImpl{Store: st}
}

func (u *UserServiceImpl) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	usr, err := u.Store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return usr, nil
}

func (u *UserServiceImpl) GetAll(ctx context.Context) ([]domain.User, error) {
	return u.Store.Users().GetAll(ctx)
}
