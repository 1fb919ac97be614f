// Package services implements the application layer: the interactive
// session state machine and the task use cases shared by the CLI and
// the MCP server.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// DefaultTickInterval matches the timer's one-second granularity.
const DefaultTickInterval = time.Second

// Session owns the application state of one interactive run. The interface
// adapter draws State every frame, waits for input no longer than Budget,
// passes key actions to Dispatch and calls Advance after every wait.
type Session struct {
	state        *domain.AppState
	durations    domain.Durations
	store        ports.TaskStore
	tickInterval time.Duration
	lastTick     time.Time
	now          func() time.Time
	onFinished   func(domain.Timer)
}

// NewSession creates a session over state. Resets and mode switches build
// timers from durations; saves go to store.
func NewSession(state *domain.AppState, durations domain.Durations, store ports.TaskStore) *Session {
	s := &Session{
		state:        state,
		durations:    durations,
		store:        store,
		tickInterval: DefaultTickInterval,
		now:          time.Now,
	}
	s.lastTick = s.now()
	return s
}

// SetClock replaces the wall clock and restarts the tick reference from it.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
	s.lastTick = now()
}

// SetOnTimerFinished sets a callback fired once when a tick takes the
// timer to zero.
func (s *Session) SetOnTimerFinished(callback func(domain.Timer)) {
	s.onFinished = callback
}

// State returns the state for drawing. Only Dispatch and Advance mutate it.
func (s *Session) State() *domain.AppState {
	return s.state
}

// TickInterval returns the frame and countdown interval.
func (s *Session) TickInterval() time.Duration {
	return s.tickInterval
}

// Budget returns how long the adapter may wait for input before the next
// tick is due. It is never negative and never exceeds the tick interval.
func (s *Session) Budget() time.Duration {
	remaining := s.tickInterval - s.now().Sub(s.lastTick)
	switch {
	case remaining < 0:
		return 0
	case remaining > s.tickInterval:
		return s.tickInterval
	}
	return remaining
}

// Advance ticks the timer when a full interval has passed since the last
// tick boundary and the timer is playing with time left. The boundary moves
// to now whenever the interval has passed, ticked or not, so a paused
// session never builds up ticks to catch up on. It reports whether the
// timer ticked.
func (s *Session) Advance() bool {
	now := s.now()
	if now.Sub(s.lastTick) < s.tickInterval {
		return false
	}
	s.lastTick = now

	timer := &s.state.Timer
	if !timer.IsPlaying() || timer.TimeRemaining == 0 {
		return false
	}

	timer.Tick()
	if timer.TimeRemaining == 0 {
		slog.Info("timer finished", "mode", timer.Mode, "length", timer.TotalTime)
		if s.onFinished != nil {
			s.onFinished(*timer)
		}
	}
	return true
}

// Dispatch applies one action to the state. It reports whether the session
// should end. Only saving can fail; a save error also ends the session.
func (s *Session) Dispatch(ctx context.Context, action Action) (bool, error) {
	state := s.state

	switch action {
	case ActionTogglePause:
		state.Timer.TogglePause()

	case ActionResetTimer:
		s.replaceTimer(state.Timer.Mode)

	case ActionSwitchPomodoro, ActionSwitchShortBreak, ActionSwitchLongBreak:
		s.replaceTimer(switchTargets[action])

	case ActionToggleStudyMode:
		state.StudyMode = state.StudyMode.Toggle()

	case ActionListPrevious:
		state.Tasks.Previous()

	case ActionListNext:
		state.Tasks.Next()

	case ActionToggleTaskComplete:
		if task := state.Tasks.Current(); task != nil {
			task.ToggleComplete()
		}

	case ActionIncrementPomodoro:
		if task := state.Tasks.Current(); task != nil {
			task.CompletePomodoro()
		}

	case ActionDecrementPomodoro:
		if task := state.Tasks.Current(); task != nil {
			task.NegatePomodoro()
		}

	case ActionSaveTasks:
		if err := s.saveTasks(ctx); err != nil {
			return true, err
		}

	case ActionToggleHelp:
		state.ShowHelp = !state.ShowHelp

	case ActionQuit:
		return true, nil
	}

	return false, nil
}

// replaceTimer swaps in a fresh paused timer for mode.
func (s *Session) replaceTimer(mode domain.PomodoroMode) {
	s.state.Timer = domain.NewTimer(s.durations.For(mode), mode)
	slog.Debug("timer replaced", "mode", mode, "length", s.state.Timer.TotalTime)
}

func (s *Session) saveTasks(ctx context.Context) error {
	tasks := s.state.TaskSnapshot()
	if err := s.store.Save(ctx, tasks); err != nil {
		slog.Error("saving tasks failed", "location", s.store.Location(), "err", err)
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	slog.Info("tasks saved", "location", s.store.Location(), "count", len(tasks))
	return nil
}
