package credential

import (
	"regexp"
	"testing"
)

var hexRe = regexp.MustCompile(`^[0-9a-f]+$`)

// =========================================================================
// GenerateSalt TESTS
// =========================================================================

func TestGenerateSalt_Is32HexChars(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}
	if len(salt) != 32 {
		t.Errorf("len(salt) = %d, want 32", len(salt))
	}
	if !hexRe.MatchString(salt) {
		t.Errorf("salt is not lowercase hex: %q", salt)
	}
}

func TestGenerateSalt_Unique(t *testing.T) {
	// 16 random bytes colliding across a handful of draws would mean the
	// random source is broken.
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		salt, err := GenerateSalt()
		if err != nil {
			t.Fatalf("GenerateSalt() error = %v", err)
		}
		if seen[salt] {
			t.Fatalf("GenerateSalt() repeated a salt: %q", salt)
		}
		seen[salt] = true
	}
}

// =========================================================================
// Hash TESTS
// =========================================================================

func TestHash_Deterministic(t *testing.T) {
	h1 := Hash("pw1", "deadbeefdeadbeefdeadbeefdeadbeef")
	h2 := Hash("pw1", "deadbeefdeadbeefdeadbeefdeadbeef")
	if h1 != h2 {
		t.Errorf("Hash() is not deterministic: %q vs %q", h1, h2)
	}
}

func TestHash_Is64HexChars(t *testing.T) {
	h := Hash("anything", "somesalt")
	if len(h) != 64 {
		t.Errorf("len(hash) = %d, want 64", len(h))
	}
	if !hexRe.MatchString(h) {
		t.Errorf("hash is not lowercase hex: %q", h)
	}
}

func TestHash_KnownVector(t *testing.T) {
	// SHA-256("") — pins the plaintext||salt concatenation order: with both
	// parts empty the digest must equal the well-known empty-input SHA-256.
	const emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Hash("", ""); got != emptySHA256 {
		t.Errorf("Hash(\"\", \"\") = %q, want %q", got, emptySHA256)
	}

	// Hash("ab", "") and Hash("a", "b") must agree — the digest is over the
	// raw concatenation, so the split point between plaintext and salt
	// doesn't change the bytes being hashed.
	if Hash("ab", "") != Hash("a", "b") {
		t.Error("Hash should digest the raw concatenation plaintext||salt")
	}
}

func TestHash_DifferentPasswordsDiffer(t *testing.T) {
	const salt = "0123456789abcdef0123456789abcdef"
	if Hash("pw1", salt) == Hash("pw2", salt) {
		t.Error("different passwords produced the same digest")
	}
}

func TestHash_DifferentSaltsDiffer(t *testing.T) {
	if Hash("pw1", "salt-a") == Hash("pw1", "salt-b") {
		t.Error("different salts produced the same digest")
	}
}

// =========================================================================
// Verify TESTS
// =========================================================================

func TestVerify_CorrectPassword(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}
	stored := Hash("correct-horse-battery-staple", salt)

	if !Verify(stored, "correct-horse-battery-staple", salt) {
		t.Error("Verify() = false for the correct password")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	salt, _ := GenerateSalt()
	stored := Hash("the-real-password", salt)

	if Verify(stored, "the-wrong-password", salt) {
		t.Error("Verify() = true for a wrong password")
	}
}

func TestVerify_WrongSalt(t *testing.T) {
	stored := Hash("pw1", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

	if Verify(stored, "pw1", "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb") {
		t.Error("Verify() = true with the wrong salt")
	}
}
