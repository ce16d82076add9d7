// Package tasksmemstore implements the tasksrepo.Storer interface with an
// in-memory map. It backs tests and the STORE=memory development mode.
package tasksmemstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jrazmi/taskapi/core/repositories/tasksrepo"
)

type Store struct {
	mu     sync.RWMutex
	tasks  map[int64]tasksrepo.Task
	nextID int64
}

func NewStore() *Store {
	return &Store{
		tasks:  make(map[int64]tasksrepo.Task),
		nextID: 1,
	}
}

// List returns all tasks ordered by id descending.
func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]tasksrepo.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		records = append(records, task)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})

	return records, nil
}

func (s *Store) Get(ctx context.Context, id int64) (tasksrepo.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return tasksrepo.Task{}, tasksrepo.ErrNotFound
	}

	return task, nil
}

func (s *Store) Create(ctx context.Context, dto tasksrepo.TaskDTO) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	task := tasksrepo.Task{
		ID:          s.nextID,
		Title:       dto.Title,
		Description: dto.Description,
		Status:      dto.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The counter only moves forward, so ids are never reused even after
	// deletes.
	s.nextID++
	s.tasks[task.ID] = task

	return task, nil
}

func (s *Store) Update(ctx context.Context, id int64, dto tasksrepo.TaskDTO) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return tasksrepo.ErrNotFound
	}

	task.Title = dto.Title
	task.Description = dto.Description
	task.Status = dto.Status
	task.UpdatedAt = time.Now().UTC()
	s.tasks[id] = task

	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return tasksrepo.ErrNotFound
	}

	delete(s.tasks, id)

	return nil
}
