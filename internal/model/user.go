// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents one registered account.
//
// WHY IS EMAIL NOT UNIQUE?
// The signup flow deliberately does not enforce a database-level uniqueness
// constraint on email. Collision prevention is a separate, composable lookup
// (SearchSameEmailUser) that a caller may run before signing up. Adding a
// UNIQUE constraint would silently change observable behaviour: a second
// signup with the same email would start failing instead of creating a
// second account.
//
// WHY STORE Salt NEXT TO Password?
// Password holds the hex SHA-256 digest of (plaintext + salt), never the
// plaintext. The salt is generated exactly once at signup and never changes
// afterwards, so it lives in its own column right next to the digest it
// belongs to. Losing the salt would make every stored digest unverifiable.
//
// Password and Salt are tagged `json:"-"` — they must never leak through a
// JSON response, no matter which handler serialises the struct. Handlers
// additionally expose users through a dedicated response struct (see
// handler/auth.go) so even IsSignedin stays internal.
type User struct {
	ID         int64     `json:"id"         db:"id"` // store-assigned, immutable
	Name       string    `json:"name"       db:"name"`
	Email      string    `json:"email"      db:"email"`
	Password   string    `json:"-"          db:"password"` // hex SHA-256 of plaintext+salt
	Salt       string    `json:"-"          db:"salt"`     // 32 hex chars, fixed at signup
	IsSignedin bool      `json:"isSignedin" db:"is_signedin"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt"  db:"updated_at"`
}
