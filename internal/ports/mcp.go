package ports

import (
	"context"

	"github.com/xvierd/pomo-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// TaskProvider is the task surface exposed to MCP clients.
// This is a driven port (implemented by the services layer).
type TaskProvider interface {
	// ListTasks returns every task, or fuzzy matches of query when set.
	ListTasks(ctx context.Context, query string) ([]domain.IndexedTask, error)

	// AddTask appends a task and saves the list.
	AddTask(ctx context.Context, title string, expected int) (domain.IndexedTask, error)

	// ToggleTask flips completion of the task at a 1-based position.
	ToggleTask(ctx context.Context, position int) (domain.IndexedTask, error)

	// AdjustPomodoros adds delta finished pomodoros to the task at a
	// 1-based position, never going below zero.
	AdjustPomodoros(ctx context.Context, position, delta int) (domain.IndexedTask, error)
}
