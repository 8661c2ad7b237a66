package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ksaito/taskboard/internal/apperror"
	"github.com/ksaito/taskboard/internal/model"
	"github.com/ksaito/taskboard/internal/repository"
)

const (
	MaxTaskTitleLength = 200
	DefaultListLimit   = 20
	MaxListLimit       = 100
)

// TaskService handles business logic for to-do items.
//
// It accepts the repository interface, never the concrete sqlite type —
// tests pass an in-memory fake, and the storage backend can change without
// touching this package.
type TaskService struct {
	repo   repository.TaskRepository
	logger *slog.Logger
}

func NewTaskService(repo repository.TaskRepository, logger *slog.Logger) *TaskService {
	return &TaskService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and saves a new task. ownerID may be nil for tasks not
// tied to an account.
//
// Validation lives here, not in the handler: every caller needs these
// rules, not just the HTTP one. Errors come back as apperror values so the
// transport can map them to status codes without string matching.
func (s *TaskService) Create(ctx context.Context, title string, ownerID *int64) (*model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "task title is required")
	}
	if len(title) > MaxTaskTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("task title must be %d characters or less", MaxTaskTitleLength))
	}

	task := &model.Task{
		Title:  title,
		UserID: ownerID,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.logger.Info("task created", slog.String("id", task.ID))
	return task, nil
}

// GetByID retrieves a task. NotFound propagates as-is — it's already a
// proper apperror, not something to re-wrap or log as a failure.
func (s *TaskService) GetByID(ctx context.Context, id string) (*model.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "task ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// List retrieves tasks with pagination, clamping limit to a sane range so
// no caller can request the whole table.
func (s *TaskService) List(ctx context.Context, limit, offset int) ([]model.Task, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	tasks, err := s.repo.List(ctx, repository.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		s.logger.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	return tasks, nil
}

// Update modifies a task's title and done flag.
//
// Fetch-then-update: confirming existence first means the NotFound error
// always comes from the same place, and the caller gets the full updated
// record back. An empty title means "keep the current one".
func (s *TaskService) Update(ctx context.Context, id, title string, done bool) (*model.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "task ID is required")
	}

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if title = strings.TrimSpace(title); title != "" {
		if len(title) > MaxTaskTitleLength {
			return nil, apperror.ValidationFailed("title",
				fmt.Sprintf("task title must be %d characters or less", MaxTaskTitleLength))
		}
		task.Title = title
	}
	task.Done = done

	if err := s.repo.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating task: %w", err)
	}

	s.logger.Info("task updated", slog.String("id", task.ID))
	return task, nil
}

// Delete removes a task by ID.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "task ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("task deleted", slog.String("id", id))
	return nil
}
