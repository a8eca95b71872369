package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sso-auth/internal/config"
	"sso-auth/internal/observability/logging"
	"sso-auth/internal/observability/metrics"
	impl "sso-auth/internal/service/impl"
	"sso-auth/internal/session"
	"sso-auth/internal/store"
	httpx "sso-auth/internal/transport/http"
)

func main() {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "sso-auth",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	logger.Info("starting service")

	cfg := config.Load()

	metrics.MustRegister("sso-auth")

	gdb, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	st := store.New(gdb)

	// Session registry: in-memory unless durability across restarts is asked
	// for. With the memory backend every restart logs all clients out.
	var registry session.Registry
	switch cfg.SessionBackend {
	case "postgres":
		registry = st.Sessions()
	default:
		registry = session.NewMemoryRegistry()
		logger.Info("sessions are in-memory and reset on restart")
	}

	pw := impl.NewPasswordServiceArgon2id()

	ts, err := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.Issuer,
		Audience:   cfg.Audience,
		AccessTTL:  cfg.AccessTTL,
		SigningKey: []byte(cfg.SigningKey),
	})
	if err != nil {
		logger.Error("token service", "error", err)
		os.Exit(1)
	}

	as := impl.NewAuthServiceImpl(st, registry, pw, ts)
	us := impl.NewUserServiceImpl(st)

	handler := httpx.NewRouter(as, us, ts, registry)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening", "addr", srv.Addr, "issuer", cfg.Issuer, "session_backend", cfg.SessionBackend)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
