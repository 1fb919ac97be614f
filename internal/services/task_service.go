package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// TaskService handles task use cases outside the interactive session.
// Every mutation loads the list, changes it and saves it back.
type TaskService struct {
	store ports.TaskStore
}

// Ensure TaskService implements ports.TaskProvider.
var _ ports.TaskProvider = (*TaskService)(nil)

// NewTaskService creates a new task service.
func NewTaskService(store ports.TaskStore) *TaskService {
	return &TaskService{store: store}
}

// ListTasks returns every task in list order, or the fuzzy matches of
// query ordered best first when query is not blank.
func (s *TaskService) ListTasks(ctx context.Context, query string) ([]domain.IndexedTask, error) {
	tasks := s.store.Load(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		result := make([]domain.IndexedTask, len(tasks))
		for i, t := range tasks {
			result[i] = domain.IndexedTask{Position: i + 1, Task: t}
		}
		return result, nil
	}

	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
	}

	matches := fuzzy.Find(query, titles)
	result := make([]domain.IndexedTask, 0, len(matches))
	for _, match := range matches {
		result = append(result, domain.IndexedTask{Position: match.Index + 1, Task: tasks[match.Index]})
	}
	return result, nil
}

// AddTask appends a new task to the end of the list.
func (s *TaskService) AddTask(ctx context.Context, title string, expected int) (domain.IndexedTask, error) {
	task, err := domain.NewTask(strings.TrimSpace(title), expected)
	if err != nil {
		return domain.IndexedTask{}, fmt.Errorf("invalid task: %w", err)
	}

	tasks := append(s.store.Load(ctx), task)
	if err := s.store.Save(ctx, tasks); err != nil {
		return domain.IndexedTask{}, fmt.Errorf("failed to save task: %w", err)
	}

	return domain.IndexedTask{Position: len(tasks), Task: task}, nil
}

// ToggleTask flips completion of the task at a 1-based position.
func (s *TaskService) ToggleTask(ctx context.Context, position int) (domain.IndexedTask, error) {
	return s.update(ctx, position, func(t *domain.Task) {
		t.ToggleComplete()
	})
}

// AdjustPomodoros adds delta finished pomodoros to the task at a 1-based
// position. Negative deltas stop at zero.
func (s *TaskService) AdjustPomodoros(ctx context.Context, position, delta int) (domain.IndexedTask, error) {
	return s.update(ctx, position, func(t *domain.Task) {
		t.AdjustPomodoros(delta)
	})
}

// update applies change to one task and saves the list.
func (s *TaskService) update(ctx context.Context, position int, change func(*domain.Task)) (domain.IndexedTask, error) {
	tasks := s.store.Load(ctx)
	if position < 1 || position > len(tasks) {
		return domain.IndexedTask{}, fmt.Errorf("position %d: %w", position, domain.ErrTaskNotFound)
	}

	task := &tasks[position-1]
	change(task)

	if err := s.store.Save(ctx, tasks); err != nil {
		return domain.IndexedTask{}, fmt.Errorf("failed to save tasks: %w", err)
	}
	return domain.IndexedTask{Position: position, Task: *task}, nil
}
