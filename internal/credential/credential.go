// Package credential — salted password hashing.
//
// HOW THE SCHEME WORKS:
// At signup we draw 16 random bytes, hex-encode them into a 32-character
// salt, and store SHA-256(plaintext + salt) as a 64-character hex digest.
// The salt is stored next to the digest and is never regenerated — the same
// (password, salt) pair must always reproduce the same digest, otherwise
// signin could never verify anything.
//
// WHY A SALT AT ALL?
// Without a salt, two users with the same password share a digest, and an
// attacker with a precomputed table of common-password hashes can reverse
// the whole table at once. A per-account random salt makes every stored
// digest unique even for identical passwords.
//
// NOTE ON THE ALGORITHM:
// SHA-256 is fast, which makes brute-forcing a single leaked digest cheaper
// than with a deliberately slow function like bcrypt. The digest scheme here
// is fixed by the wire contract (deterministic 64-char hex output, salt
// stored separately), so swapping in bcrypt would change observable
// behaviour. The comparison IS hardened: Verify uses a constant-time
// compare, so response timing never reveals how many digest bytes matched.
package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// saltBytes is the number of random bytes drawn per salt.
// Hex-encoding doubles the length, so stored salts are 32 characters.
const saltBytes = 16

// GenerateSalt returns a fresh random salt as a 32-character hex string.
//
// crypto/rand is the cryptographically secure source — math/rand would be
// predictable and defeat the purpose of salting. The only failure mode is
// the OS entropy source being unavailable, which is propagated to the
// caller rather than papered over.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("credential: generating salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Hash returns the hex SHA-256 digest of plaintext followed by salt.
//
// ORDER MATTERS: the digest is over the byte concatenation
// plaintext || salt — plaintext first, salt appended. Deterministic and
// side-effect free: same inputs, same 64-character output, always.
func Hash(plaintext, salt string) string {
	sum := sha256.Sum256([]byte(plaintext + salt))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether plaintext+salt hashes to storedHash.
//
// subtle.ConstantTimeCompare examines every byte regardless of where the
// first mismatch occurs, so an attacker can't learn digest prefixes from
// response timing.
func Verify(storedHash, plaintext, salt string) bool {
	computed := Hash(plaintext, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
