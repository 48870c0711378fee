package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("hash must not equal plaintext")
	}

	if !CheckPassword(hash, "s3cret-pass") {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestGenerateTempPassword(t *testing.T) {
	a, err := GenerateTempPassword()
	if err != nil {
		t.Fatalf("GenerateTempPassword error: %v", err)
	}
	if len(a) != 16 {
		t.Fatalf("expected 16 hex chars, got %d", len(a))
	}

	b, err := GenerateTempPassword()
	if err != nil {
		t.Fatalf("GenerateTempPassword error: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct temporary passwords")
	}
}
