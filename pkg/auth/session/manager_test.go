package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/enums"
	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu      sync.Mutex
	data    map[string]string
	expired map[string]time.Duration
}

func newMockStore() *mockStore {
	return &mockStore{
		data:    make(map[string]string),
		expired: make(map[string]time.Duration),
	}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	default:
		m.data[key] = fmt.Sprint(v)
	}
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expired[key] = ttl
	return nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) SessionKey(sessionID string) string {
	return fmt.Sprintf("gym:session:%s", sessionID)
}

func newTestManager(store *mockStore) *Manager {
	return &Manager{
		store:     store,
		keyer:     store,
		ttl:       30 * time.Minute,
		pageSize:  15,
		increment: 5,
	}
}

func TestManagerCreateAndGet(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)
	ctx := context.Background()

	sessionID, err := manager.Create(ctx, Record{
		UserID:   7,
		Username: "jdoe",
		Role:     enums.RoleStaff,
		Name:     "Jane Doe",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sessionID == "" {
		t.Fatal("expected a session id")
	}

	rec, err := manager.Get(ctx, sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.UserID != 7 || rec.Username != "jdoe" || rec.Role != enums.RoleStaff {
		t.Fatalf("record not preserved: %+v", rec)
	}
	if rec.CheckinsShown != 15 {
		t.Fatalf("expected check-in counter seeded at 15, got %d", rec.CheckinsShown)
	}
}

func TestManagerCreateRequiresUser(t *testing.T) {
	manager := newTestManager(newMockStore())
	if _, err := manager.Create(context.Background(), Record{}); err == nil {
		t.Fatal("expected missing user id error")
	}
}

func TestManagerGetMissingSession(t *testing.T) {
	manager := newTestManager(newMockStore())
	ctx := context.Background()

	if _, err := manager.Get(ctx, "nope"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if _, err := manager.Get(ctx, "  "); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for blank id, got %v", err)
	}
}

func TestManagerTouchRefreshesTTL(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)
	ctx := context.Background()

	sessionID, err := manager.Create(ctx, Record{UserID: 1, Role: enums.RoleMember})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := manager.Touch(ctx, sessionID); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if ttl := store.expired[store.SessionKey(sessionID)]; ttl != 30*time.Minute {
		t.Fatalf("expected ttl refresh to 30m, got %v", ttl)
	}
}

func TestManagerRevoke(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)
	ctx := context.Background()

	sessionID, err := manager.Create(ctx, Record{UserID: 1, Role: enums.RoleMember})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := manager.Revoke(ctx, sessionID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := manager.Get(ctx, sessionID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected revoked session to be gone, got %v", err)
	}
}

func TestManagerGrowCheckinLimit(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)
	ctx := context.Background()

	sessionID, err := manager.Create(ctx, Record{UserID: 1, Role: enums.RoleStaff})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	limit, err := manager.CheckinLimit(ctx, sessionID)
	if err != nil {
		t.Fatalf("checkin limit: %v", err)
	}
	if limit != 15 {
		t.Fatalf("expected initial limit 15, got %d", limit)
	}

	grown, err := manager.GrowCheckinLimit(ctx, sessionID)
	if err != nil {
		t.Fatalf("grow: %v", err)
	}
	if grown != 20 {
		t.Fatalf("expected limit 20 after one grow, got %d", grown)
	}

	// The bump is persisted, not just returned.
	limit, err = manager.CheckinLimit(ctx, sessionID)
	if err != nil {
		t.Fatalf("checkin limit: %v", err)
	}
	if limit != 20 {
		t.Fatalf("expected persisted limit 20, got %d", limit)
	}

	if _, err := manager.GrowCheckinLimit(ctx, "missing"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for unknown session, got %v", err)
	}
}
