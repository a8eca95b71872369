package service

import (
	"context"

	"sso-auth/internal/domain"
	"sso-auth/internal/dto"
)

// DeviceMeta carries the request metadata the device classifier works from.
type DeviceMeta struct {
	TypeHint  string // X-Device-Type header, may be empty
	UserAgent string
	IP        string // normalized client IP, may be empty
}

type AuthService interface {
	Register(ctx context.Context, r dto.RegisterRequest, meta DeviceMeta) (*dto.AuthResponse, error)
	Login(ctx context.Context, r dto.LoginRequest, meta DeviceMeta) (*dto.AuthResponse, error)
	Logout(ctx context.Context, sessionID domain.SessionID) error
	LogoutAll(ctx context.Context, userID domain.UserID) (int, error)
	LogoutDevice(ctx context.Context, userID domain.UserID, deviceType domain.DeviceType) (bool, error)
	ListSessions(ctx context.Context, userID domain.UserID) ([]domain.Session, error)
}
