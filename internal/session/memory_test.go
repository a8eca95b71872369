package session

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"sso-auth/internal/domain"
)

func isLive(t *testing.T, reg *MemoryRegistry, id domain.SessionID) bool {
	t.Helper()
	sess, err := reg.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	return sess != nil
}

func TestCreateReplacesSameDeviceType(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	userID := uuid.New()

	first, err := reg.Create(ctx, userID, domain.DeviceWeb, "Chrome on Windows 10", "203.0.113.9")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := reg.Create(ctx, userID, domain.DeviceWeb, "Firefox on Linux", "203.0.113.9")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if isLive(t, reg, first.ID) {
		t.Fatal("replaced session must not be live")
	}
	if !isLive(t, reg, second.ID) {
		t.Fatal("replacement session must be live")
	}

	sessions, _ := reg.ListLive(ctx, userID)
	if len(sessions) != 1 {
		t.Fatalf("expected exactly one live web session, got %d", len(sessions))
	}
	if sessions[0].ID != second.ID {
		t.Fatal("live session is not the replacement")
	}
}

func TestCreateDistinctDeviceTypesCoexist(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	userID := uuid.New()

	web, _ := reg.Create(ctx, userID, domain.DeviceWeb, "Chrome", "")
	mobile, _ := reg.Create(ctx, userID, domain.DeviceMobile, "iOS Device", "")

	for _, id := range []domain.SessionID{web.ID, mobile.ID} {
		if !isLive(t, reg, id) {
			t.Fatalf("session %s should be live", id)
		}
	}

	sessions, _ := reg.ListLive(ctx, userID)
	if len(sessions) != 2 {
		t.Fatalf("expected two live sessions, got %d", len(sessions))
	}
	// creation order
	if sessions[0].ID != web.ID || sessions[1].ID != mobile.ID {
		t.Fatal("sessions not in creation order")
	}
}

func TestConcurrentCreateSameSlot(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	userID := uuid.New()

	const racers = 32
	ids := make([]domain.SessionID, racers)

	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, err := reg.Create(ctx, userID, domain.DeviceMobile, "Android Device", "")
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			ids[i] = sess.ID
		}(i)
	}
	wg.Wait()

	liveCount := 0
	for _, id := range ids {
		if isLive(t, reg, id) {
			liveCount++
		}
	}
	if liveCount != 1 {
		t.Fatalf("expected exactly one winner, got %d live sessions", liveCount)
	}

	sessions, _ := reg.ListLive(ctx, userID)
	if len(sessions) != 1 {
		t.Fatalf("expected one live session after race, got %d", len(sessions))
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	userID := uuid.New()

	sess, _ := reg.Create(ctx, userID, domain.DeviceWeb, "Chrome", "")

	if err := reg.Revoke(ctx, sess.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := reg.Revoke(ctx, sess.ID); err != nil {
		t.Fatalf("second revoke must be a no-op, got %v", err)
	}
	if err := reg.Revoke(ctx, uuid.New()); err != nil {
		t.Fatalf("revoking an absent session must be a no-op, got %v", err)
	}

	if isLive(t, reg, sess.ID) {
		t.Fatal("revoked session still live")
	}
}

func TestRevokeThenCreateReopensSlot(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	userID := uuid.New()

	old, _ := reg.Create(ctx, userID, domain.DeviceWeb, "Chrome", "")
	_ = reg.Revoke(ctx, old.ID)

	fresh, _ := reg.Create(ctx, userID, domain.DeviceWeb, "Chrome", "")
	if !isLive(t, reg, fresh.ID) {
		t.Fatal("fresh session should be live after slot was vacated")
	}
}

func TestRevokeDevice(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	userID := uuid.New()

	web, _ := reg.Create(ctx, userID, domain.DeviceWeb, "Chrome", "")
	mobile, _ := reg.Create(ctx, userID, domain.DeviceMobile, "iOS Device", "")

	revoked, err := reg.RevokeDevice(ctx, userID, domain.DeviceMobile)
	if err != nil || !revoked {
		t.Fatalf("expected revocation, got revoked=%v err=%v", revoked, err)
	}
	if isLive(t, reg, mobile.ID) {
		t.Fatal("mobile session still live")
	}
	if !isLive(t, reg, web.ID) {
		t.Fatal("web session should be untouched")
	}

	// no mobile session left: reported false, nothing else disturbed
	revoked, err = reg.RevokeDevice(ctx, userID, domain.DeviceMobile)
	if err != nil || revoked {
		t.Fatalf("expected no-op, got revoked=%v err=%v", revoked, err)
	}
	if sessions, _ := reg.ListLive(ctx, userID); len(sessions) != 1 {
		t.Fatalf("expected the web session to remain, got %d sessions", len(sessions))
	}
}

func TestRevokeAll(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	userID := uuid.New()
	other := uuid.New()

	ids := make([]domain.SessionID, 0, 3)
	for _, dt := range []domain.DeviceType{domain.DeviceWeb, domain.DeviceMobile, domain.DeviceDesktop} {
		sess, _ := reg.Create(ctx, userID, dt, "dev", "")
		ids = append(ids, sess.ID)
	}
	otherSess, _ := reg.Create(ctx, other, domain.DeviceWeb, "dev", "")

	count, err := reg.RevokeAll(ctx, userID)
	if err != nil {
		t.Fatalf("revoke all: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 revoked, got %d", count)
	}
	for _, id := range ids {
		if isLive(t, reg, id) {
			t.Fatalf("session %s still live after revoke-all", id)
		}
	}
	if sessions, _ := reg.ListLive(ctx, userID); len(sessions) != 0 {
		t.Fatalf("expected empty listing, got %d", len(sessions))
	}
	if !isLive(t, reg, otherSess.ID) {
		t.Fatal("other user's session must be untouched")
	}

	if count, _ := reg.RevokeAll(ctx, userID); count != 0 {
		t.Fatalf("second revoke-all should find nothing, got %d", count)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry()
	userID := uuid.New()

	sess, _ := reg.Create(ctx, userID, domain.DeviceWeb, "Chrome", "")

	got, err := reg.Get(ctx, sess.ID)
	if err != nil || got == nil {
		t.Fatalf("expected session, got %v err=%v", got, err)
	}
	got.DeviceName = "mutated"

	again, _ := reg.Get(ctx, sess.ID)
	if again.DeviceName != "Chrome" {
		t.Fatal("registry state leaked through Get")
	}

	if missing, _ := reg.Get(ctx, uuid.New()); missing != nil {
		t.Fatal("absent session should be nil")
	}
}
