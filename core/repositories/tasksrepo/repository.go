package tasksrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrazmi/taskapi/sdk/logger"
)

// Set of error values for CRUD operations on the task resource
var (
	ErrNotFound      = errors.New("task not found")
	ErrInvalidStatus = errors.New("invalid task status")
)

// Storer defines the complete data storage interface for Task.
type Storer interface {
	List(ctx context.Context) ([]Task, error)
	Get(ctx context.Context, id int64) (Task, error)
	Create(ctx context.Context, dto TaskDTO) (Task, error)
	Update(ctx context.Context, id int64, dto TaskDTO) error
	Delete(ctx context.Context, id int64) error
}

// Repository provides access to task storage and owns the business rules:
// a task must exist before it can be updated or deleted, and updates are
// re-read after persisting so callers see post-persist values.
//
// Update and Delete are lookup-then-act sequences with no transaction
// around them; a concurrent delete racing one of them surfaces as
// ErrNotFound on the second operation.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new Task repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// List returns all tasks ordered by id descending, newest first.
func (r *Repository) List(ctx context.Context) ([]Task, error) {
	records, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("task repository list: %w", err)
	}

	return records, nil
}

// Get returns the task with the given id or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id int64) (Task, error) {
	record, err := r.storer.Get(ctx, id)
	if err != nil {
		return Task{}, fmt.Errorf("task repository get: %w", err)
	}

	return record, nil
}

// Create inserts a new task from the dto fields. The store assigns id and
// timestamps and the materialized row is returned.
func (r *Repository) Create(ctx context.Context, dto TaskDTO) (Task, error) {
	record, err := r.storer.Create(ctx, dto)
	if err != nil {
		return Task{}, fmt.Errorf("task repository create: %w", err)
	}

	r.log.InfoContext(ctx, "task created", "id", record.ID)

	return record, nil
}

// Update overwrites title, description and status of an existing task and
// returns the freshly reloaded row. Fails with ErrNotFound when no task has
// the given id.
func (r *Repository) Update(ctx context.Context, id int64, dto TaskDTO) (Task, error) {
	if _, err := r.storer.Get(ctx, id); err != nil {
		return Task{}, fmt.Errorf("task repository update lookup: %w", err)
	}

	if err := r.storer.Update(ctx, id, dto); err != nil {
		return Task{}, fmt.Errorf("task repository update: %w", err)
	}

	record, err := r.storer.Get(ctx, id)
	if err != nil {
		return Task{}, fmt.Errorf("task repository update reload: %w", err)
	}

	return record, nil
}

// Delete removes an existing task. Fails with ErrNotFound when no task has
// the given id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.storer.Get(ctx, id); err != nil {
		return fmt.Errorf("task repository delete lookup: %w", err)
	}

	if err := r.storer.Delete(ctx, id); err != nil {
		return fmt.Errorf("task repository delete: %w", err)
	}

	r.log.InfoContext(ctx, "task deleted", "id", id)

	return nil
}
