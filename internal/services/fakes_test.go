package services

import (
	"context"
	"errors"
	"time"

	"github.com/xvierd/pomo-cli/internal/domain"
)

var errDiskFull = errors.New("disk full")

// memStore is an in-memory ports.TaskStore for tests.
type memStore struct {
	tasks   []domain.Task
	saves   int
	saveErr error
}

func (m *memStore) Load(ctx context.Context) []domain.Task {
	out := make([]domain.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

func (m *memStore) Save(ctx context.Context, tasks []domain.Task) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.tasks = make([]domain.Task, len(tasks))
	copy(m.tasks, tasks)
	return nil
}

func (m *memStore) Location() string { return "memory" }

func (m *memStore) Close() error { return nil }

// fakeClock is a manually advanced clock.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Add(d time.Duration) { c.t = c.t.Add(d) }
