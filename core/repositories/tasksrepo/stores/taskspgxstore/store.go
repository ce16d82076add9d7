// Package taskspgxstore implements the tasksrepo.Storer interface against
// PostgreSQL.
package taskspgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/taskapi/core/repositories/tasksrepo"
	"github.com/jrazmi/taskapi/infrastructure/postgresdb"
	"github.com/jrazmi/taskapi/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

// List retrieves all tasks ordered by id descending.
func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	query := `SELECT id, title, description, status, created_at, updated_at FROM tasks ORDER BY id DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	for _, record := range records {
		if err := checkStatus(record); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// Get retrieves a single task by id.
func (s *Store) Get(ctx context.Context, id int64) (tasksrepo.Task, error) {
	query := `SELECT id, title, description, status, created_at, updated_at FROM tasks WHERE id = @id`

	args := pgx.NamedArgs{
		"id": id,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tasksrepo.Task{}, tasksrepo.ErrNotFound
		}
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	if err := checkStatus(record); err != nil {
		return tasksrepo.Task{}, err
	}

	return record, nil
}

// Create inserts a new task. The id and timestamps come from the database.
func (s *Store) Create(ctx context.Context, dto tasksrepo.TaskDTO) (tasksrepo.Task, error) {
	query := `INSERT INTO tasks (title, description, status) VALUES (@title, @description, @status) RETURNING id, title, description, status, created_at, updated_at`

	args := pgx.NamedArgs{
		"title":       dto.Title,
		"description": dto.Description,
		"status":      dto.Status,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}
	defer rows.Close()

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// Update overwrites title, description and status and bumps updated_at.
func (s *Store) Update(ctx context.Context, id int64, dto tasksrepo.TaskDTO) error {
	query := `UPDATE tasks SET title = @title, description = @description, status = @status, updated_at = NOW() WHERE id = @id`

	args := pgx.NamedArgs{
		"id":          id,
		"title":       dto.Title,
		"description": dto.Description,
		"status":      dto.Status,
	}

	result, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	if result.RowsAffected() == 0 {
		return tasksrepo.ErrNotFound
	}

	return nil
}

// Delete removes a task.
func (s *Store) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = @id`

	args := pgx.NamedArgs{
		"id": id,
	}

	result, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return postgresdb.HandlePgError(err)
	}

	if result.RowsAffected() == 0 {
		return tasksrepo.ErrNotFound
	}

	return nil
}

// checkStatus refuses to materialize a row whose stored status is not a
// member of the enumerated set.
func checkStatus(record tasksrepo.Task) error {
	if _, err := tasksrepo.ParseStatus(string(record.Status)); err != nil {
		return fmt.Errorf("task %d: %w", record.ID, err)
	}
	return nil
}
