package ports

import "github.com/xvierd/pomo-cli/internal/domain"

// Notifier tells the user that a timer ran out.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// TimerFinished is called once when a timer reaches zero.
	TimerFinished(mode domain.PomodoroMode, length string) error
}
