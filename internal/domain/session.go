package domain

import "time"

// Session rows outlive revocation: revoked_at is a marker, not a delete, so
// history stays queryable. The partial unique index keeps at most one live
// row per (user, device type) slot even if writers race.
type Session struct {
	ID         SessionID  `gorm:"type:uuid;primaryKey" db:"id"`
	UserID     UserID     `gorm:"type:uuid;index;uniqueIndex:ux_sessions_live_slot,where:revoked_at IS NULL" db:"user_id"`
	DeviceType DeviceType `gorm:"type:text;not null;uniqueIndex:ux_sessions_live_slot,where:revoked_at IS NULL" db:"device_type"`
	DeviceName string     `gorm:"type:text;not null" db:"device_name"`
	IP         string     `gorm:"type:inet" db:"ip"`
	CreatedAt  time.Time  `gorm:"not null" db:"created_at"`
	RevokedAt  *time.Time `db:"revoked_at"`
}

func (Session) TableName() string { return "sessions" }

// Live reports whether the session has not been revoked. Wall-clock expiry is
// the token's concern, not the session's.
func (s *Session) Live() bool { return s.RevokedAt == nil }
