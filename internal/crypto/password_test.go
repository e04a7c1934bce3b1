package crypto

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("grove-street-4-life")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("HashPassword() = %q, want bcrypt $2a$ prefix", hash)
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("grove-street-4-life")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	ok, err := VerifyPassword("grove-street-4-life", hash)
	if err != nil || !ok {
		t.Errorf("VerifyPassword() = %v, %v; want true, nil", ok, err)
	}

	ok, err = VerifyPassword("ballas", hash)
	if err != nil || ok {
		t.Errorf("VerifyPassword() wrong password = %v, %v; want false, nil", ok, err)
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("x", "not-a-hash"); err == nil {
		t.Error("VerifyPassword() expected error for malformed hash")
	}
}
