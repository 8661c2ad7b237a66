package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/ksaito/taskboard/internal/apperror"
	"github.com/ksaito/taskboard/internal/credential"
	"github.com/ksaito/taskboard/internal/model"
)

// newTestUserDB returns a *UserDB backed by a fresh in-memory database.
func newTestUserDB(t *testing.T) (*DB, *UserDB) {
	t.Helper()
	db := newTestDB(t)
	return db, db.Users()
}

// createTestUser creates a user with a real salt+digest and fails the test
// if anything errors. isSignedin starts true, matching what signup does.
func createTestUser(t *testing.T, u *UserDB, name, email string) *model.User {
	t.Helper()

	salt, err := credential.GenerateSalt()
	if err != nil {
		t.Fatalf("generating salt: %v", err)
	}
	user := &model.User{
		Name:       name,
		Email:      email,
		Password:   credential.Hash("pw-"+name, salt),
		Salt:       salt,
		IsSignedin: true,
	}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestUserCreate(t *testing.T) {
	_, u := newTestUserDB(t)

	user := createTestUser(t, u, "Alice", "a@x.com")

	if user.ID == 0 {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}

	found, err := u.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID() after Create: %v", err)
	}
	if !found.IsSignedin {
		t.Error("IsSignedin should round-trip as true")
	}
	if found.Salt != user.Salt {
		t.Errorf("Salt = %q, want %q", found.Salt, user.Salt)
	}
	if found.Password != user.Password {
		t.Errorf("Password digest = %q, want %q", found.Password, user.Password)
	}
}

func TestUserCreate_AssignsIncreasingIDs(t *testing.T) {
	_, u := newTestUserDB(t)

	first := createTestUser(t, u, "Alice", "a@x.com")
	second := createTestUser(t, u, "Bob", "b@x.com")

	if second.ID <= first.ID {
		t.Errorf("IDs should increase: first=%d second=%d", first.ID, second.ID)
	}
}

func TestUserCreate_AllowsDuplicateEmail(t *testing.T) {
	_, u := newTestUserDB(t)

	// Email is intentionally not UNIQUE — a second signup with the same
	// address must succeed and create a second account.
	first := createTestUser(t, u, "Alice", "shared@x.com")
	second := createTestUser(t, u, "Alice Again", "shared@x.com")

	if first.ID == second.ID {
		t.Error("duplicate-email accounts should be distinct rows")
	}
}

// =========================================================================
// GET BY EMAIL TESTS
// =========================================================================

func TestUserGetByEmail(t *testing.T) {
	_, u := newTestUserDB(t)
	created := createTestUser(t, u, "Alice", "a@x.com")

	found, err := u.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.Name != "Alice" {
		t.Errorf("Name = %q, want %q", found.Name, "Alice")
	}
}

func TestUserGetByEmail_NotFound(t *testing.T) {
	_, u := newTestUserDB(t)

	_, err := u.GetByEmail(context.Background(), "ghost@x.com")
	if err == nil {
		t.Fatal("GetByEmail() should error for an unknown email")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByEmail() error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByEmail_FirstCreatedWins(t *testing.T) {
	_, u := newTestUserDB(t)

	// With duplicate emails the contract is "first created wins" — the
	// lookup resolves to the lowest-ID row.
	first := createTestUser(t, u, "Original", "dup@x.com")
	createTestUser(t, u, "Impostor", "dup@x.com")

	found, err := u.GetByEmail(context.Background(), "dup@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if found.ID != first.ID {
		t.Errorf("GetByEmail() resolved to ID %d, want the first-created %d", found.ID, first.ID)
	}
	if found.Name != "Original" {
		t.Errorf("Name = %q, want %q", found.Name, "Original")
	}
}

// =========================================================================
// LIST BY EMAIL TESTS
// =========================================================================

func TestUserListByEmail(t *testing.T) {
	_, u := newTestUserDB(t)

	createTestUser(t, u, "Alice", "dup@x.com")
	createTestUser(t, u, "Alice Again", "dup@x.com")
	createTestUser(t, u, "Bob", "b@x.com")

	users, err := u.ListByEmail(context.Background(), "dup@x.com")
	if err != nil {
		t.Fatalf("ListByEmail() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(users))
	}
	// Oldest first
	if users[0].Name != "Alice" || users[1].Name != "Alice Again" {
		t.Errorf("unexpected order: %q, %q", users[0].Name, users[1].Name)
	}
}

func TestUserListByEmail_Empty(t *testing.T) {
	_, u := newTestUserDB(t)

	users, err := u.ListByEmail(context.Background(), "nobody@x.com")
	if err != nil {
		t.Fatalf("ListByEmail() error = %v", err)
	}
	if users == nil {
		t.Fatal("ListByEmail() should return an empty slice, not nil")
	}
	if len(users) != 0 {
		t.Errorf("len(users) = %d, want 0", len(users))
	}
}

// =========================================================================
// SET SIGNEDIN TESTS
// =========================================================================

func TestSetSignedin_FlipsFlag(t *testing.T) {
	_, u := newTestUserDB(t)
	created := createTestUser(t, u, "Alice", "a@x.com")

	updated, err := u.SetSignedin(context.Background(), created.ID, "a@x.com", false)
	if err != nil {
		t.Fatalf("SetSignedin() error = %v", err)
	}
	if updated.IsSignedin {
		t.Error("IsSignedin should be false after SetSignedin(..., false)")
	}

	// And back on again
	updated, err = u.SetSignedin(context.Background(), created.ID, "a@x.com", true)
	if err != nil {
		t.Fatalf("SetSignedin() error = %v", err)
	}
	if !updated.IsSignedin {
		t.Error("IsSignedin should be true after SetSignedin(..., true)")
	}
}

func TestSetSignedin_DoesNotTouchCredentials(t *testing.T) {
	_, u := newTestUserDB(t)
	created := createTestUser(t, u, "Alice", "a@x.com")

	updated, err := u.SetSignedin(context.Background(), created.ID, "a@x.com", false)
	if err != nil {
		t.Fatalf("SetSignedin() error = %v", err)
	}
	if updated.Salt != created.Salt {
		t.Error("SetSignedin must not change the salt")
	}
	if updated.Password != created.Password {
		t.Error("SetSignedin must not change the password digest")
	}
}

func TestSetSignedin_UnknownEmail(t *testing.T) {
	_, u := newTestUserDB(t)

	_, err := u.SetSignedin(context.Background(), 1, "ghost@x.com", false)
	if err == nil {
		t.Fatal("SetSignedin() should error for an unknown email")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("SetSignedin() error = %v, want ErrNotFound", err)
	}
}

func TestSetSignedin_ZeroIDMatchesByEmailAlone(t *testing.T) {
	_, u := newTestUserDB(t)
	created := createTestUser(t, u, "Alice", "a@x.com")

	updated, err := u.SetSignedin(context.Background(), 0, "a@x.com", false)
	if err != nil {
		t.Fatalf("SetSignedin() with zero id error = %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("updated.ID = %d, want %d", updated.ID, created.ID)
	}
	if updated.IsSignedin {
		t.Error("IsSignedin should be false")
	}
}
