package domain

import (
	"fmt"
	"math"
	"time"
)

// TimerStatus represents whether the countdown is running.
type TimerStatus string

const (
	TimerPlaying TimerStatus = "playing"
	TimerPaused  TimerStatus = "paused"
)

// Timer is a one-second granular countdown. A Timer is never reconfigured in
// place: switching mode or resetting builds a new one with NewTimer.
type Timer struct {
	Status        TimerStatus
	TimeRemaining time.Duration
	TotalTime     time.Duration
	Percentage    int
	Mode          PomodoroMode
}

// NewTimer creates a paused timer with the full duration remaining.
func NewTimer(total time.Duration, mode PomodoroMode) Timer {
	total = total.Truncate(time.Second)
	if total < 0 {
		total = 0
	}
	return Timer{
		Status:        TimerPaused,
		TimeRemaining: total,
		TotalTime:     total,
		Percentage:    0,
		Mode:          mode,
	}
}

// Tick removes one second from the remaining time and recomputes the
// percentage. Callers must not tick a timer whose remaining time is zero.
func (t *Timer) Tick() {
	t.TimeRemaining -= time.Second
	t.Percentage = elapsedPercentage(t.TotalTime, t.TimeRemaining)
}

// Pause stops the countdown.
func (t *Timer) Pause() {
	t.Status = TimerPaused
}

// Unpause resumes the countdown.
func (t *Timer) Unpause() {
	t.Status = TimerPlaying
}

// TogglePause flips between playing and paused.
func (t *Timer) TogglePause() {
	if t.Status == TimerPlaying {
		t.Pause()
		return
	}
	t.Unpause()
}

// IsPlaying reports whether the countdown is running.
func (t Timer) IsPlaying() bool {
	return t.Status == TimerPlaying
}

// IsFinished reports whether the countdown reached zero.
func (t Timer) IsFinished() bool {
	return t.TimeRemaining <= 0
}

// Format renders the remaining time as MM:SS, or HH:MM:SS from one hour up.
func (t Timer) Format() string {
	return FormatClock(t.TimeRemaining)
}

// FormatClock renders d floored to whole seconds as MM:SS below one hour and
// HH:MM:SS otherwise.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	h := secs / 3600
	m := (secs / 60) % 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// elapsedPercentage returns round(100 * (1 - remaining/total)) clamped to [0,100].
func elapsedPercentage(total, remaining time.Duration) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(100 * (1 - float64(remaining)/float64(total))))
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}
