package domain

import (
	"strings"
	"time"
)

// PomodoroMode labels which configured duration a timer was built from.
type PomodoroMode string

const (
	ModePomodoro   PomodoroMode = "pomodoro"
	ModeShortBreak PomodoroMode = "short_break"
	ModeLongBreak  PomodoroMode = "long_break"
)

// Label returns a human-readable label for the mode.
func (m PomodoroMode) Label() string {
	switch m {
	case ModePomodoro:
		return "Pomodoro"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// IsBreak returns true for the two break modes.
func (m PomodoroMode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// StudyMode selects how much of the interface is shown.
type StudyMode string

const (
	StudyNormal StudyMode = "normal"
	StudyZen    StudyMode = "zen"
)

// ParseStudyMode maps the focus-mode option to a StudyMode. Only "true",
// case-insensitively, selects Zen.
func ParseStudyMode(focus string) StudyMode {
	if strings.EqualFold(strings.TrimSpace(focus), "true") {
		return StudyZen
	}
	return StudyNormal
}

// Toggle returns the other study mode.
func (s StudyMode) Toggle() StudyMode {
	if s == StudyZen {
		return StudyNormal
	}
	return StudyZen
}

// Durations holds the configured length of each timer mode.
type Durations struct {
	Pomodoro   time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// DefaultDurations returns the classic 25/5/15 configuration.
func DefaultDurations() Durations {
	return Durations{
		Pomodoro:   25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
	}
}

// For returns the configured duration of mode.
func (d Durations) For(mode PomodoroMode) time.Duration {
	switch mode {
	case ModeShortBreak:
		return d.ShortBreak
	case ModeLongBreak:
		return d.LongBreak
	default:
		return d.Pomodoro
	}
}

// Validate rejects negative durations.
func (d Durations) Validate() error {
	if d.Pomodoro < 0 || d.ShortBreak < 0 || d.LongBreak < 0 {
		return ErrInvalidDuration
	}
	return nil
}
