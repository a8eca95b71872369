package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"sso-auth/internal/domain"
	"sso-auth/internal/dto"
	"sso-auth/internal/netutil"
	"sso-auth/internal/service"
)

type Handler struct {
	Auth  service.AuthService
	Users service.UserService
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// XFF can be a list: client, proxy1, proxy2...
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if normalized, ok := netutil.NormalizeIP(ip); ok {
			return normalized
		}
	}
	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		if normalized, ok := netutil.NormalizeIP(xr); ok {
			return normalized
		}
	}
	if normalized, ok := netutil.NormalizeIP(r.RemoteAddr); ok {
		return normalized
	}
	return r.RemoteAddr
}

func deviceMeta(r *http.Request) service.DeviceMeta {
	return service.DeviceMeta{
		TypeHint:  r.Header.Get("X-Device-Type"),
		UserAgent: r.UserAgent(),
		IP:        clientIP(r),
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request"})
		return
	}
	res, err := h.Auth.Register(r.Context(), req, deviceMeta(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request"})
		return
	}
	res, err := h.Auth.Login(r.Context(), req, deviceMeta(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrMissingToken)
		return
	}
	if err := h.Auth.Logout(r.Context(), id.SessionID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrMissingToken)
		return
	}
	count, err := h.Auth.LogoutAll(r.Context(), id.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.LogoutAllResponse{
		Message:      "all sessions revoked",
		RevokedCount: count,
	})
}

func (h *Handler) LogoutDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrMissingToken)
		return
	}
	deviceType, ok := domain.ParseDeviceType(strings.ToLower(chi.URLParam(r, "deviceType")))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown device type"})
		return
	}
	revoked, err := h.Auth.LogoutDevice(r.Context(), id.UserID, deviceType)
	if err != nil {
		writeError(w, err)
		return
	}
	msg := "no live session for device type"
	if revoked {
		msg = "device session revoked"
	}
	writeJSON(w, http.StatusOK, dto.LogoutDeviceResponse{Message: msg, Revoked: revoked})
}

func (h *Handler) Sessions(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrMissingToken)
		return
	}
	sessions, err := h.Auth.ListSessions(r.Context(), id.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := dto.SessionListResponse{Sessions: make([]dto.SessionResponse, 0, len(sessions))}
	for i := range sessions {
		out.Sessions = append(out.Sessions, dto.NewSessionResponse(&sessions[i], id.SessionID))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrMissingToken)
		return
	}
	user, err := h.Users.GetByID(r.Context(), id.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

func (h *Handler) AllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.GetAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, out)
}
