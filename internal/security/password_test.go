package security_test

import (
	"testing"

	"github.com/chiemelie/bookhub/internal/security"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := security.HashPassword("pw123")

	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == "pw123" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := security.CheckPassword(hash, "pw123"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}

	if err := security.CheckPassword(hash, "pw124"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := security.HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	h2, err := security.HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if h1 == h2 {
		t.Fatal("two hashes of the same password should differ")
	}
}

func TestMalformedStoredHashIsMismatch(t *testing.T) {
	if err := security.CheckPassword("not-a-bcrypt-hash", "pw123"); err == nil {
		t.Fatal("malformed hash accepted")
	}
}
