package security

import (
	"errors"
	"strings"
	"testing"

	"github.com/isaacstephens/gymman-backend/pkg/config"
)

// Small parameters keep hashing fast in tests.
var testCfg = config.PasswordConfig{
	ArgonMemoryKB:    8,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("s3cret-pass", testCfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %q", encoded)
	}

	ok, err := VerifyPassword("s3cret-pass", encoded)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = VerifyPassword("wrong-pass", encoded)
	if err != nil {
		t.Fatalf("verify wrong: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	first, err := HashPassword("same-input", testCfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("same-input", testCfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct salts to yield distinct hashes")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", testCfg); err == nil {
		t.Fatal("expected empty password error")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plainly-not-a-hash",
		"$argon2i$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8,t=1,p=1$!!notb64!!$aGFzaA",
	} {
		if _, err := VerifyPassword("anything", encoded); !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("expected ErrInvalidHash for %q, got %v", encoded, err)
		}
	}
}

func TestVerifyPasswordTamperedHash(t *testing.T) {
	encoded, err := HashPassword("s3cret-pass", testCfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	// Flip the first character of the hash segment.
	parts := strings.Split(encoded, "$")
	segment := []byte(parts[5])
	if segment[0] == 'A' {
		segment[0] = 'B'
	} else {
		segment[0] = 'A'
	}
	parts[5] = string(segment)
	tampered := strings.Join(parts, "$")

	ok, err := VerifyPassword("s3cret-pass", tampered)
	if err != nil {
		t.Fatalf("verify tampered: %v", err)
	}
	if ok {
		t.Fatal("expected tampered hash to fail verification")
	}
}
