package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isaacstephens/gymman-backend/pkg/config"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
	redisclient "github.com/isaacstephens/gymman-backend/pkg/redis"
	redislib "github.com/redis/go-redis/v9"
)

// ErrNoSession signals a missing or idle-expired session.
var ErrNoSession = errors.New("session not found")

// Record is the server-side state kept per logged-in principal. The
// check-in counter backs the paginated recent-checkins view: it starts at
// the configured page size and grows by a fixed increment per load-more.
type Record struct {
	UserID        uint       `json:"user_id"`
	Username      string     `json:"username"`
	Role          enums.Role `json:"role"`
	Name          string     `json:"name"`
	CheckinsShown int        `json:"checkins_shown"`
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Manager owns session lifecycle: creation at login, idle-TTL refresh on
// every authorized request, and revocation at logout.
type Manager struct {
	store     sessionStore
	keyer     sessionKeyer
	ttl       time.Duration
	pageSize  int
	increment int
}

// Checker exposes the read surface needed by middleware.
type Checker interface {
	Get(ctx context.Context, sessionID string) (*Record, error)
	Touch(ctx context.Context, sessionID string) error
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.IdleTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session idle ttl must be positive")
	}
	pageSize := cfg.CheckinPageSize
	if pageSize <= 0 {
		pageSize = 15
	}
	increment := cfg.CheckinPageIncrement
	if increment <= 0 {
		increment = 5
	}

	return &Manager{
		store:     client,
		keyer:     client,
		ttl:       ttl,
		pageSize:  pageSize,
		increment: increment,
	}, nil
}

// Create stores a fresh session record and returns its identifier.
func (m *Manager) Create(ctx context.Context, rec Record) (string, error) {
	if rec.UserID == 0 {
		return "", fmt.Errorf("user id is required")
	}
	if rec.CheckinsShown <= 0 {
		rec.CheckinsShown = m.pageSize
	}
	sessionID := NewSessionID()
	if err := m.save(ctx, sessionID, rec); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Get loads the session record, or ErrNoSession if it expired or never existed.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Record, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrNoSession
	}
	raw, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	return &rec, nil
}

// Touch refreshes the idle expiry without rewriting the record.
func (m *Manager) Touch(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrNoSession
	}
	return m.store.Expire(ctx, m.keyer.SessionKey(sessionID), m.ttl)
}

// Revoke deletes the session record immediately.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID))
}

// CheckinLimit returns the caller's current recent-checkins page size.
func (m *Manager) CheckinLimit(ctx context.Context, sessionID string) (int, error) {
	rec, err := m.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if rec.CheckinsShown <= 0 {
		return m.pageSize, nil
	}
	return rec.CheckinsShown, nil
}

// GrowCheckinLimit bumps the page size by the configured increment and
// persists it, returning the new value.
func (m *Manager) GrowCheckinLimit(ctx context.Context, sessionID string) (int, error) {
	rec, err := m.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if rec.CheckinsShown <= 0 {
		rec.CheckinsShown = m.pageSize
	}
	rec.CheckinsShown += m.increment
	if err := m.save(ctx, sessionID, *rec); err != nil {
		return 0, err
	}
	return rec.CheckinsShown, nil
}

func (m *Manager) save(ctx context.Context, sessionID string, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	return m.store.Set(ctx, m.keyer.SessionKey(sessionID), payload, m.ttl)
}

// NewSessionID produces the identifier used as the JWT jti/Redis key.
func NewSessionID() string {
	return uuid.NewString()
}
