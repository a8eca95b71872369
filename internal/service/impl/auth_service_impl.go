package impl

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sso-auth/internal/device"
	"sso-auth/internal/domain"
	"sso-auth/internal/dto"
	"sso-auth/internal/observability/metrics"
	"sso-auth/internal/observability/middleware"
	"sso-auth/internal/service"
	"sso-auth/internal/session"
	"sso-auth/internal/store"
)

type AuthServiceImpl struct {
	Store           dataStore
	Sessions        session.Registry
	PasswordService service.PasswordService
	TService        service.TokenService
}

func NewAuthServiceImpl(st *store.Store, registry session.Registry, passwordService service.PasswordService, tokenService service.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{
		Store:           gormStoreAdapter{store: st},
		Sessions:        registry,
		PasswordService: passwordService,
		TService:        tokenService,
	}
}

type dataStore interface {
	WithTx(ctx context.Context, fn func(tx storeTx) error) error
}

type storeTx interface {
	Users() userStore
	Credentials() credentialStore
}

type userStore interface {
	Create(ctx context.Context, usr *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type credentialStore interface {
	UpsertPassword(ctx context.Context, c *domain.PasswordCredential) error
	GetPasswordByUserID(ctx context.Context, userID uuid.UUID) (*domain.PasswordCredential, error)
}

type gormStoreAdapter struct {
	store *store.Store
}

func (g gormStoreAdapter) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	if g.store == nil {
		return errors.New("nil store")
	}
	return g.store.WithTx(ctx, func(tx *store.Store) error {
		return fn(gormTxAdapter{tx: tx})
	})
}

type gormTxAdapter struct {
	tx *store.Store
}

func (g gormTxAdapter) Users() userStore { return g.tx.Users() }

func (g gormTxAdapter) Credentials() credentialStore { return g.tx.Credentials() }

func (a *AuthServiceImpl) Register(ctx context.Context, r dto.RegisterRequest, meta service.DeviceMeta) (*dto.AuthResponse, error) {
	result := "success"
	defer func() {
		metrics.AuthRegistrationsTotal.WithLabelValues(result).Inc()
	}()

	if r.Email == "" || r.Name == "" || r.Password == "" {
		result = "failure"
		return nil, ErrEmptyCredential
	}
	if len(r.Password) < 8 {
		result = "failure"
		return nil, ErrPasswordLength
	}

	var user *domain.User

	// Single transaction: user row plus password credential.
	err := a.Store.WithTx(ctx, func(tx storeTx) error {
		now := time.Now().UTC()
		u := &domain.User{
			ID:        uuid.New(),
			Email:     r.Email,
			Name:      r.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			return err // unique email constraint surfaces as domain.ErrDuplicateEmail
		}

		hash, salt, paramsJSON, algo, ver, err := a.PasswordService.Hash(r.Password)
		if err != nil {
			return err
		}
		cred := &domain.PasswordCredential{
			ID:          uuid.New(),
			UserID:      u.ID,
			Algo:        algo,
			Hash:        hash,
			Salt:        salt,
			ParamsJSON:  paramsJSON,
			PasswordVer: ver,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Credentials().UpsertPassword(ctx, cred); err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		result = "failure"
		return nil, err
	}

	return a.openSession(ctx, user, meta, "register")
}

func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest, meta service.DeviceMeta) (*dto.AuthResponse, error) {
	result := "success"
	defer func() {
		metrics.AuthLoginsTotal.WithLabelValues(result).Inc()
	}()

	if r.Email == "" || r.Password == "" {
		result = "failure"
		return nil, ErrEmptyCredential
	}

	var user *domain.User

	// WithTx because a policy upgrade may rewrite the credential.
	err := a.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByEmail(ctx, r.Email)
		if err != nil {
			return domain.ErrInvalidCredentials // don't leak whether the email exists
		}

		cred, err := tx.Credentials().GetPasswordByUserID(ctx, u.ID)
		if err != nil {
			return domain.ErrInvalidCredentials
		}

		rehashNeeded, ok := a.PasswordService.Verify(r.Password, cred)
		if !ok {
			return domain.ErrInvalidCredentials
		}

		if rehashNeeded {
			newHash, newSalt, newParamsJSON, algo, ver, err := a.PasswordService.Hash(r.Password)
			if err != nil {
				return err
			}
			cred.Algo = algo
			cred.Hash = newHash
			cred.Salt = newSalt
			cred.ParamsJSON = newParamsJSON
			cred.PasswordVer = ver
			cred.UpdatedAt = time.Now().UTC()
			if err := tx.Credentials().UpsertPassword(ctx, cred); err != nil {
				return err
			}
		}

		user = u
		return nil
	})
	if err != nil {
		result = "failure"
		return nil, err
	}

	res, err := a.openSession(ctx, user, meta, "login")
	if err != nil {
		result = "failure"
	}
	return res, err
}

// openSession classifies the device, installs the session (evicting a live
// same-type session) and mints the bound token.
func (a *AuthServiceImpl) openSession(ctx context.Context, user *domain.User, meta service.DeviceMeta, flow string) (*dto.AuthResponse, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues(flow, result).Inc()
	}()

	deviceType, deviceName := device.Classify(meta.TypeHint, meta.UserAgent)

	sess, err := a.Sessions.Create(ctx, user.ID, deviceType, deviceName, meta.IP)
	if err != nil {
		result = "failure"
		return nil, err
	}

	token, err := a.TService.Issue(user.ID, sess.ID)
	if err != nil {
		result = "failure"
		return nil, err
	}

	reqID := middleware.RequestIDFromContext(ctx)
	slog.Info("session opened",
		"flow", flow,
		"session_id", sess.ID,
		"user_id", user.ID,
		"device_type", deviceType,
		"device_name", deviceName,
		"request_id", reqID,
	)

	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

func (a *AuthServiceImpl) Logout(ctx context.Context, sessionID domain.SessionID) error {
	if err := a.Sessions.Revoke(ctx, sessionID); err != nil {
		return err
	}
	metrics.SessionsRevokedTotal.WithLabelValues("logout").Inc()
	slog.Info("session revoked", "session_id", sessionID, "request_id", middleware.RequestIDFromContext(ctx))
	return nil
}

func (a *AuthServiceImpl) LogoutAll(ctx context.Context, userID domain.UserID) (int, error) {
	count, err := a.Sessions.RevokeAll(ctx, userID)
	if err != nil {
		return 0, err
	}
	metrics.SessionsRevokedTotal.WithLabelValues("all").Add(float64(count))
	slog.Info("all sessions revoked", "user_id", userID, "count", count, "request_id", middleware.RequestIDFromContext(ctx))
	return count, nil
}

func (a *AuthServiceImpl) LogoutDevice(ctx context.Context, userID domain.UserID, deviceType domain.DeviceType) (bool, error) {
	revoked, err := a.Sessions.RevokeDevice(ctx, userID, deviceType)
	if err != nil {
		return false, err
	}
	if revoked {
		metrics.SessionsRevokedTotal.WithLabelValues("device").Inc()
		slog.Info("device session revoked", "user_id", userID, "device_type", deviceType, "request_id", middleware.RequestIDFromContext(ctx))
	}
	return revoked, nil
}

func (a *AuthServiceImpl) ListSessions(ctx context.Context, userID domain.UserID) ([]domain.Session, error) {
	return a.Sessions.ListLive(ctx, userID)
}
