package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/services"
)

func keyPress(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// stubStore keeps saved tasks in memory and can be told to fail.
type stubStore struct {
	saved []domain.Task
	err   error
}

func (s *stubStore) Load(context.Context) []domain.Task { return nil }

func (s *stubStore) Save(_ context.Context, tasks []domain.Task) error {
	if s.err != nil {
		return s.err
	}
	s.saved = tasks
	return nil
}

func (s *stubStore) Location() string { return "stub" }

func (s *stubStore) Close() error { return nil }

var errReadOnly = errors.New("read-only file system")

func testTasks() []domain.Task {
	return []domain.Task{
		{Title: "Write tests", PomodorosExpected: 2},
		{Title: "Fix bug", PomodorosExpected: 1, PomodorosCompleted: 1, Completed: true},
	}
}

// testModel returns a sized model over a fresh session with a controllable
// clock.
func testModel(t *testing.T, store *stubStore) (Model, *time.Time) {
	t.Helper()
	durations := domain.DefaultDurations()
	state := domain.NewAppState(durations, testTasks(), domain.StudyNormal)
	session := services.NewSession(state, durations, store)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	session.SetClock(func() time.Time { return now })

	m := NewModel(context.Background(), session, Options{})
	m.width = 80
	m.height = 40
	return m, &now
}

// press sends keys through Update in order and returns the final model.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		result, _ := m.Update(keyPress(k))
		m = result.(Model)
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
