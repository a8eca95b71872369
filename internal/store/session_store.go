package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sso-auth/internal/domain"
)

// SessionStore is the durable session registry backend. Revocation is a
// revoked_at timestamp; rows are kept for audit, so callers only ever see
// rows where revoked_at is unset. It satisfies session.Registry.
type SessionStore struct{ db *gorm.DB }

func (s *Store) Sessions() *SessionStore { return &SessionStore{db: s.DB} }

// Create installs a fresh session, revoking the user's live session of the
// same device type first. Racing creates for the same slot are serialized
// with an advisory lock held for the transaction: under READ COMMITTED the
// revoke predicate alone is not enough, since two racers can each miss the
// other's uncommitted row and both insert. The partial unique index on live
// slots backstops the lock; a conflict there is retried once.
func (ss *SessionStore) Create(ctx context.Context, userID domain.UserID, deviceType domain.DeviceType, deviceName, ip string) (domain.Session, error) {
	now := time.Now().UTC()
	sess := domain.Session{
		ID:         uuid.New(),
		UserID:     userID,
		DeviceType: deviceType,
		DeviceName: deviceName,
		IP:         ip,
		CreatedAt:  now,
	}

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(hashtextextended(?, 0))",
				slotKey(userID, deviceType),
			).Error; err != nil {
				return err
			}
			if err := tx.Model(&domain.Session{}).
				Where("user_id = ? AND device_type = ? AND revoked_at IS NULL", userID, deviceType).
				Update("revoked_at", now).Error; err != nil {
				return err
			}
			return tx.Create(&sess).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

func slotKey(userID domain.UserID, deviceType domain.DeviceType) string {
	return userID.String() + "/" + string(deviceType)
}

// Get fetches the row regardless of revocation state, then filters in Go;
// revoked rows are kept for audit but are invisible to callers.
func (ss *SessionStore) Get(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	var sess domain.Session
	err := ss.db.WithContext(ctx).First(&sess, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !sess.Live() {
		return nil, nil
	}
	return &sess, nil
}

func (ss *SessionStore) Revoke(ctx context.Context, id domain.SessionID) error {
	return ss.db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", time.Now().UTC()).Error
}

func (ss *SessionStore) RevokeDevice(ctx context.Context, userID domain.UserID, deviceType domain.DeviceType) (bool, error) {
	tx := ss.db.WithContext(ctx).Model(&domain.Session{}).
		Where("user_id = ? AND device_type = ? AND revoked_at IS NULL", userID, deviceType).
		Update("revoked_at", time.Now().UTC())
	return tx.RowsAffected > 0, tx.Error
}

func (ss *SessionStore) RevokeAll(ctx context.Context, userID domain.UserID) (int, error) {
	tx := ss.db.WithContext(ctx).Model(&domain.Session{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now().UTC())
	return int(tx.RowsAffected), tx.Error
}

func (ss *SessionStore) ListLive(ctx context.Context, userID domain.UserID) ([]domain.Session, error) {
	var sessions []domain.Session
	err := ss.db.WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Order("created_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
