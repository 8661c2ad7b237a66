package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/ksaito/taskboard/internal/apperror"
	"github.com/ksaito/taskboard/internal/model"
	"github.com/ksaito/taskboard/internal/repository"
)

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// UserDB implements repository.UserRepository over the shared pool.
type UserDB struct {
	conn *sql.DB
}

const userColumns = `id, name, email, password, salt, is_signedin, created_at, updated_at`

// scanUser reads one user row. Works for both sql.Row and sql.Rows because
// both expose Scan with the same signature.
func scanUser(row interface{ Scan(dest ...any) error }, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.Salt,
		&u.IsSignedin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

// Create inserts a new user row.
//
// ID GENERATION:
// Unlike tasks (which get client-side xids), user IDs come from SQLite's
// AUTOINCREMENT — they are store-assigned integers, which is the natural
// key shape for rows the transport layer addresses by number. LastInsertId
// hands the assigned ID back so we can write it into the caller's struct.
func (db *UserDB) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (name, email, password, salt, is_signedin, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Name,
		user.Email,
		user.Password,
		user.Salt,
		user.IsSignedin,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByEmail returns the earliest-created user with the given email.
//
// Email is not unique, so "the" user is ambiguous when duplicates exist.
// ORDER BY id ASC LIMIT 1 pins the answer to the first-created account —
// signins keep working for the original account even after a colliding
// signup.
func (db *UserDB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? ORDER BY id ASC LIMIT 1`,
		email,
	)
	if err := scanUser(row, &u); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: getting user by email %s: %w", email, err)
	}

	return &u, nil
}

// ListByEmail returns every account sharing the email, oldest first.
func (db *UserDB) ListByEmail(ctx context.Context, email string) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? ORDER BY id ASC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users by email %s: %w", email, err)
	}
	defer rows.Close()

	// Non-nil empty slice so the JSON encoding is [] rather than null.
	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users by email %s: %w", email, err)
	}

	return users, nil
}

// GetByID returns the user with the given store-assigned ID.
func (db *UserDB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	)
	if err := scanUser(row, &u); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}

	return &u, nil
}

// SetSignedin updates the signed-in flag and returns the updated record.
//
// The match is email-first: id participates only when the caller supplies a
// non-zero value, and then both must agree. RowsAffected distinguishes "no
// such row" (→ ErrNotFound) from a successful single-row update.
func (db *UserDB) SetSignedin(ctx context.Context, id int64, email string, value bool) (*model.User, error) {
	query := `UPDATE users SET is_signedin = ?, updated_at = ? WHERE email = ?`
	args := []any{value, time.Now(), email}
	if id != 0 {
		query += ` AND id = ?`
		args = append(args, id)
	}

	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating is_signedin for %s: %w", email, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading rows affected: %w", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("user", email)
	}

	if id != 0 {
		return db.GetByID(ctx, id)
	}
	return db.GetByEmail(ctx, email)
}
