package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"sso-auth/internal/domain"
	impl "sso-auth/internal/service/impl"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps the error taxonomy onto status codes. Token and session
// failures collapse into one generic 401 message; only the missing-header
// case says so, since the client already knows it sent nothing.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: domain.ErrMissingToken.Error()})
	case errors.Is(err, domain.ErrMalformedToken),
		errors.Is(err, domain.ErrExpiredToken),
		errors.Is(err, domain.ErrSessionRevoked):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()})
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeJSON(w, http.StatusConflict, errorResponse{Error: domain.ErrDuplicateEmail.Error()})
	case errors.Is(err, domain.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: domain.ErrUserNotFound.Error()})
	case errors.Is(err, impl.ErrEmptyCredential),
		errors.Is(err, impl.ErrPasswordLength),
		errors.Is(err, impl.ErrEmptyPassword):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
