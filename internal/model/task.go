package model

import "time"

// Task is a single to-do item, optionally owned by a user.
//
// Tasks use string xids rather than integer IDs: they're created client-side
// much more often than users, and xids are sortable by creation time without
// a round-trip to the database.
//
// UserID is a *int64 because ownership is optional — tasks created before
// signup (or by anonymous callers) have no owner, and a nullable column maps
// cleanly to a nil pointer.
type Task struct {
	ID        string    `json:"id"        db:"id"`
	Title     string    `json:"title"     db:"title"`
	Done      bool      `json:"done"      db:"done"`
	UserID    *int64    `json:"userId,omitempty" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
