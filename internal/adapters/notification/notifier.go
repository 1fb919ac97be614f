// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg    config.NotificationConfig
	notify func(title, message string) error
	beep   func() error
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg: cfg,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		beep: func() error {
			return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
		},
	}
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg.Enabled
}

// TimerFinished announces that a timer of the given mode and length ran out.
func (n *Notifier) TimerFinished(mode domain.PomodoroMode, length string) error {
	if !n.cfg.Enabled {
		return nil
	}

	title, message := finishedMessage(mode, length)
	if err := n.notify(title, message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	if n.cfg.Sound {
		if err := n.beep(); err != nil {
			return fmt.Errorf("failed to play sound: %w", err)
		}
	}
	return nil
}

func finishedMessage(mode domain.PomodoroMode, length string) (string, string) {
	if mode.IsBreak() {
		return "☕ Break Over!",
			fmt.Sprintf("Your %s %s is complete. Ready to focus?", length, mode.Label())
	}
	return "🍅 Pomodoro Complete!",
		fmt.Sprintf("Great job! You completed a %s pomodoro.", length)
}
