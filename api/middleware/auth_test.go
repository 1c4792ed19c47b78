package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/isaacstephens/gymman-backend/pkg/auth"
	"github.com/isaacstephens/gymman-backend/pkg/auth/session"
	"github.com/isaacstephens/gymman-backend/pkg/config"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
)

type stubChecker struct {
	rec     *session.Record
	err     error
	touched []string
}

func (s *stubChecker) Get(ctx context.Context, sessionID string) (*session.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rec, nil
}

func (s *stubChecker) Touch(ctx context.Context, sessionID string) error {
	s.touched = append(s.touched, sessionID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "gymman", ExpirationMinutes: 60}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, userID uint, role enums.Role, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   userID,
		Username: "tester",
		Role:     role,
		JTI:      jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	checker := &stubChecker{rec: &session.Record{UserID: 1}}
	handler := Auth(testJWTConfig(), checker, nil)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	checker := &stubChecker{rec: &session.Record{UserID: 1}}
	handler := Auth(testJWTConfig(), checker, nil)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsExpiredSession(t *testing.T) {
	cfg := testJWTConfig()
	checker := &stubChecker{err: session.ErrNoSession}
	handler := Auth(cfg, checker, nil)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, cfg, 5, enums.RoleStaff, "sess-1"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired session got %d", resp.Code)
	}
}

func TestAuthRejectsSessionUserMismatch(t *testing.T) {
	cfg := testJWTConfig()
	checker := &stubChecker{rec: &session.Record{UserID: 99}}
	handler := Auth(cfg, checker, nil)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, cfg, 5, enums.RoleStaff, "sess-1"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for session mismatch got %d", resp.Code)
	}
}

func TestAuthSeedsContextAndTouchesSession(t *testing.T) {
	cfg := testJWTConfig()
	checker := &stubChecker{rec: &session.Record{UserID: 5, Role: enums.RoleStaff}}

	var captured struct {
		userID    uint
		role      string
		sessionID string
	}
	handler := Auth(cfg, checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.userID = UserIDFromContext(r.Context())
		captured.role = RoleFromContext(r.Context())
		captured.sessionID = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, cfg, 5, enums.RoleStaff, "sess-1"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.userID != 5 {
		t.Fatalf("expected user id 5 in context, got %d", captured.userID)
	}
	if captured.role != string(enums.RoleStaff) {
		t.Fatalf("expected role staff got %s", captured.role)
	}
	if captured.sessionID != "sess-1" {
		t.Fatalf("expected session id in context, got %q", captured.sessionID)
	}
	if len(checker.touched) != 1 || checker.touched[0] != "sess-1" {
		t.Fatalf("expected idle expiry refresh for sess-1, got %v", checker.touched)
	}
}

func TestRequireRoleEnforcesRank(t *testing.T) {
	gate := RequireRole(enums.RoleStaff, nil)(http.HandlerFunc(okHandler))

	run := func(role string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithRole(req.Context(), role))
		resp := httptest.NewRecorder()
		gate.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := run(string(enums.RoleMember)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for member got %d", code)
	}
	if code := run(string(enums.RoleStaff)); code != http.StatusOK {
		t.Fatalf("expected 200 for staff got %d", code)
	}
	if code := run(string(enums.RoleOwner)); code != http.StatusOK {
		t.Fatalf("expected 200 for owner got %d", code)
	}
	if code := run(""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing role got %d", code)
	}
}
