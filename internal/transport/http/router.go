package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	obsmw "sso-auth/internal/observability/middleware"
	"sso-auth/internal/service"
	"sso-auth/internal/session"
)

// NewRouter mounts the public auth routes, the guarded session/user routes
// and the operational endpoints.
func NewRouter(auth service.AuthService, users service.UserService, tokens service.TokenService, registry session.Registry) http.Handler {
	h := &Handler{Auth: auth, Users: users}
	guard := AuthGuard(tokens, registry)

	r := chi.NewRouter()
	r.Use(obsmw.WithRequestAndTrace)
	r.Use(obsmw.WithMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Post("/logout", h.Logout)
			r.Post("/logout-all", h.LogoutAll)
			r.Post("/logout-device/{deviceType}", h.LogoutDevice)
			r.Get("/sessions", h.Sessions)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(guard)
		r.Get("/api/profile", h.Profile)
		r.Get("/api/users", h.AllUsers)
	})

	return r
}
