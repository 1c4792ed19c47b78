package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/config"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "gymman",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()

	payload := AccessTokenPayload{
		UserID:   42,
		Username: "jdoe",
		Role:     enums.RoleStaff,
		JTI:      "session-abc",
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != 42 {
		t.Fatalf("expected user_id 42, got %d", claims.UserID)
	}
	if claims.Username != "jdoe" {
		t.Fatalf("unexpected username %q", claims.Username)
	}
	if claims.Role != enums.RoleStaff {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.ID != "session-abc" {
		t.Fatalf("expected jti session-abc, got %q", claims.ID)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestMintAccessTokenGeneratesJTI(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "gymman",
		ExpirationMinutes: 5,
	}

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: 1,
		Role:   enums.RoleMember,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected a generated jti")
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "gymman",
		ExpirationMinutes: 10,
	}

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: 7,
		Role:   enums.RoleOwner,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseAccessTokenWrongIssuer(t *testing.T) {
	mintCfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "someone-else",
		ExpirationMinutes: 10,
	}
	parseCfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "gymman",
		ExpirationMinutes: 10,
	}

	token, err := MintAccessToken(mintCfg, time.Now(), AccessTokenPayload{
		UserID: 7,
		Role:   enums.RoleTrainer,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(parseCfg, token); err == nil {
		t.Fatal("expected issuer mismatch error")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "gymman",
		ExpirationMinutes: 15,
	}
	now := time.Now().Add(-time.Hour)

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID: 3,
		Role:   enums.RoleStaff,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMintAccessTokenInvalidRole(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "gymman",
		ExpirationMinutes: 5,
	}

	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 1, Role: ""}); err == nil {
		t.Fatal("expected invalid role error")
	}
}
