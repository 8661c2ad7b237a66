package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ksaito/taskboard/internal/apperror"
	"github.com/ksaito/taskboard/internal/model"
	"github.com/ksaito/taskboard/internal/repository"
	"github.com/rs/xid"
)

// compile-time check that *TaskDB implements repository.TaskRepository
var _ repository.TaskRepository = (*TaskDB)(nil)

// TaskDB implements repository.TaskRepository over the shared pool.
type TaskDB struct {
	conn *sql.DB
}

// Create inserts a new task.
//
// The ID is generated here with xid: 20 URL-safe characters, sortable by
// creation time. Pointer receiver on the task so the caller sees the
// generated ID and timestamps after the call.
func (db *TaskDB) Create(ctx context.Context, task *model.Task) error {
	task.ID = xid.New().String()

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO tasks (id, title, done, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.Title,
		task.Done,
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating task: %w", err)
	}

	return nil
}

// GetByID retrieves a single task.
// sql.ErrNoRows is not a real error — it means "no matching row", which we
// translate to the domain's NotFound so the handler can answer 404.
func (db *TaskDB) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, done, user_id, created_at, updated_at
		 FROM tasks WHERE id = ?`,
		id,
	).Scan(
		&task.ID,
		&task.Title,
		&task.Done,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("task", id)
		}
		return nil, fmt.Errorf("sqlite: getting task %s: %w", id, err)
	}

	return &task, nil
}

// List retrieves tasks newest-first with LIMIT/OFFSET pagination.
func (db *TaskDB) List(ctx context.Context, opts repository.ListOptions) ([]model.Task, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, done, user_id, created_at, updated_at
		 FROM tasks
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0, limit)
	for rows.Next() {
		var task model.Task
		if err := rows.Scan(
			&task.ID, &task.Title, &task.Done, &task.UserID,
			&task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tasks: %w", err)
	}

	return tasks, nil
}

// Update modifies title and done; id, user_id, and created_at are immutable.
// RowsAffected distinguishes "no such task" from a successful update without
// a second query.
func (db *TaskDB) Update(ctx context.Context, task *model.Task) error {
	task.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE tasks SET title = ?, done = ?, updated_at = ? WHERE id = ?`,
		task.Title,
		task.Done,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating task %s: %w", task.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("task", task.ID)
	}

	return nil
}

// Delete removes a task. Same RowsAffected pattern as Update.
func (db *TaskDB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting task %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("task", id)
	}

	return nil
}
