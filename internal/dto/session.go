package dto

import (
	"time"

	"sso-auth/internal/domain"
)

type SessionResponse struct {
	DeviceType string    `json:"device_type"`
	DeviceName string    `json:"device_name"`
	CreatedAt  time.Time `json:"created_at"`
	IPAddress  string    `json:"ip_address,omitempty"`
	IsCurrent  bool      `json:"is_current"`
}

func NewSessionResponse(s *domain.Session, current domain.SessionID) SessionResponse {
	return SessionResponse{
		DeviceType: string(s.DeviceType),
		DeviceName: s.DeviceName,
		CreatedAt:  s.CreatedAt,
		IPAddress:  s.IP,
		IsCurrent:  s.ID == current,
	}
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

type LogoutAllResponse struct {
	Message      string `json:"message"`
	RevokedCount int    `json:"revoked_count"`
}

type LogoutDeviceResponse struct {
	Message string `json:"message"`
	Revoked bool   `json:"revoked"`
}
