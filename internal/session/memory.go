package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"sso-auth/internal/domain"
)

type ownerKey struct {
	userID     domain.UserID
	deviceType domain.DeviceType
}

type record struct {
	sess domain.Session
	seq  uint64
}

// MemoryRegistry keeps live sessions in process memory. Sessions do not
// survive a restart; tokens bound to them fail validation afterwards, which
// integrators should treat as a forced re-login.
//
// Both indexes are guarded by one mutex so the replace transition in Create
// is a single atomic step: no reader can observe zero or two live sessions
// for an occupied (user, device type) slot.
type MemoryRegistry struct {
	mu      sync.RWMutex
	byID    map[domain.SessionID]*record
	byOwner map[ownerKey]domain.SessionID
	nextSeq uint64
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		byID:    make(map[domain.SessionID]*record),
		byOwner: make(map[ownerKey]domain.SessionID),
	}
}

func (m *MemoryRegistry) Create(_ context.Context, userID domain.UserID, deviceType domain.DeviceType, deviceName, ip string) (domain.Session, error) {
	sess := domain.Session{
		ID:         uuid.New(),
		UserID:     userID,
		DeviceType: deviceType,
		DeviceName: deviceName,
		IP:         ip,
		CreatedAt:  time.Now().UTC(),
	}

	key := ownerKey{userID: userID, deviceType: deviceType}

	m.mu.Lock()
	defer m.mu.Unlock()

	if oldID, ok := m.byOwner[key]; ok {
		delete(m.byID, oldID)
	}
	m.nextSeq++
	m.byID[sess.ID] = &record{sess: sess, seq: m.nextSeq}
	m.byOwner[key] = sess.ID

	return sess, nil
}

func (m *MemoryRegistry) Get(_ context.Context, id domain.SessionID) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	sess := rec.sess
	return &sess, nil
}

func (m *MemoryRegistry) Revoke(_ context.Context, id domain.SessionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(id)
	return nil
}

func (m *MemoryRegistry) RevokeDevice(_ context.Context, userID domain.UserID, deviceType domain.DeviceType) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byOwner[ownerKey{userID: userID, deviceType: deviceType}]
	if !ok {
		return false, nil
	}
	m.remove(id)
	return true, nil
}

func (m *MemoryRegistry) RevokeAll(_ context.Context, userID domain.UserID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for id, rec := range m.byID {
		if rec.sess.UserID == userID {
			m.remove(id)
			count++
		}
	}
	return count, nil
}

func (m *MemoryRegistry) ListLive(_ context.Context, userID domain.UserID) ([]domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var recs []*record
	for _, rec := range m.byID {
		if rec.sess.UserID == userID {
			recs = append(recs, rec)
		}
	}
	// seq, not CreatedAt: wall clocks can collide within a tick.
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	out := make([]domain.Session, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.sess)
	}
	return out, nil
}

// remove unlinks a session from both indexes. Callers hold the write lock.
func (m *MemoryRegistry) remove(id domain.SessionID) {
	rec, ok := m.byID[id]
	if !ok {
		return
	}
	delete(m.byID, id)

	key := ownerKey{userID: rec.sess.UserID, deviceType: rec.sess.DeviceType}
	if current, ok := m.byOwner[key]; ok && current == id {
		delete(m.byOwner, key)
	}
}
