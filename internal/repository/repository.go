// Package repository declares the storage interfaces the service layer
// depends on. Services accept these interfaces, never a concrete DB type,
// so tests can substitute in-memory fakes and the backing store can change
// without touching business logic.
package repository

import (
	"context"

	"github.com/ksaito/taskboard/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
}

// UserRepository is typed access to persisted user rows.
//
// EMAIL IS NOT A UNIQUE KEY:
// GetByEmail returns at most one row even though several accounts may share
// an email. The contract is "first created wins" — the row with the lowest
// ID. ListByEmail returns all of them, which is how duplicate detection
// works.
type UserRepository interface {
	// Create inserts a new user row. The store assigns ID and timestamps;
	// they are written back into the passed struct.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail returns the earliest-created user with the given email,
	// or an error wrapping apperror.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// ListByEmail returns every account sharing the email, oldest first.
	// An email with no accounts yields an empty slice, not an error.
	ListByEmail(ctx context.Context, email string) ([]model.User, error)

	// GetByID returns the user with the given store-assigned ID.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// SetSignedin updates the signed-in flag on the row matched by email
	// (primary key of the operation) and returns the updated record.
	// The id is a secondary match key: when non-zero it must also match.
	// Fails with apperror.ErrNotFound when no row matches.
	SetSignedin(ctx context.Context, id int64, email string, value bool) (*model.User, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context, opts ListOptions) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
}
