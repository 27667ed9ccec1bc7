package helpers

import "testing"

func TestHashPasswordVerifies(t *testing.T) {
	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CompareHashAndPassword(hash, "secret-password") {
		t.Fatalf("expected hash to verify against original password")
	}
	if CompareHashAndPassword(hash, "other-password") {
		t.Fatalf("expected hash not to verify against a different password")
	}
}

func TestHashPasswordSaltedPerCall(t *testing.T) {
	h1, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same input must differ")
	}
	if !CompareHashAndPassword(h1, "secret-password") || !CompareHashAndPassword(h2, "secret-password") {
		t.Fatalf("both hashes must verify against the original input")
	}
}

func TestCompareMalformedDigestFailsClosed(t *testing.T) {
	if CompareHashAndPassword("not-a-bcrypt-digest", "secret-password") {
		t.Fatalf("malformed digest must never verify")
	}
	if CompareHashAndPassword("", "secret-password") {
		t.Fatalf("empty digest must never verify")
	}
}
