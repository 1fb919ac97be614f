// Package ports defines the interfaces (driven and driving ports)
// between pomo's domain and services and the outside world: the task
// store, desktop notifications and version-control lookups.
package ports

import (
	"context"

	"github.com/xvierd/pomo-cli/internal/domain"
)

// TaskStore loads and saves the whole task list.
// This is a driven port (implemented by adapters).
type TaskStore interface {
	// Load returns the stored tasks in their stored order. A missing or
	// unreadable store yields an empty list, never an error.
	Load(ctx context.Context) []domain.Task

	// Save overwrites the store with tasks.
	Save(ctx context.Context, tasks []domain.Task) error

	// Location describes where tasks are kept, for messages.
	Location() string

	// Close releases any resources held by the store.
	Close() error
}
