package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/pomo-cli/internal/services"
)

// KeyMap defines the key bindings of the session.
type KeyMap struct {
	// Timer
	TogglePause key.Binding
	Reset       key.Binding
	Pomodoro    key.Binding
	ShortBreak  key.Binding
	LongBreak   key.Binding
	StudyMode   key.Binding

	// Tasks
	Up        key.Binding
	Down      key.Binding
	Complete  key.Binding
	Increment key.Binding
	Decrement key.Binding
	SaveTasks key.Binding

	// App
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		TogglePause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset timer"),
		),
		Pomodoro: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pomodoro"),
		),
		ShortBreak: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "short break"),
		),
		LongBreak: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "long break"),
		),
		StudyMode: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "zen mode"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Complete: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle done"),
		),
		Increment: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "add pomodoro"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "remove pomodoro"),
		),
		SaveTasks: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "save tasks"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns bindings for the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TogglePause, k.StudyMode, k.Help, k.Quit}
}

// FullHelp returns bindings for the help overlay, one column per group.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TogglePause, k.Reset, k.Pomodoro, k.ShortBreak, k.LongBreak},
		{k.Up, k.Down, k.Complete, k.Increment, k.Decrement},
		{k.SaveTasks, k.StudyMode, k.Help, k.Quit},
	}
}

// Action maps a key press to a session action.
func (k KeyMap) Action(msg tea.KeyMsg) (services.Action, bool) {
	bindings := []struct {
		binding key.Binding
		action  services.Action
	}{
		{k.TogglePause, services.ActionTogglePause},
		{k.Reset, services.ActionResetTimer},
		{k.Pomodoro, services.ActionSwitchPomodoro},
		{k.ShortBreak, services.ActionSwitchShortBreak},
		{k.LongBreak, services.ActionSwitchLongBreak},
		{k.StudyMode, services.ActionToggleStudyMode},
		{k.Up, services.ActionListPrevious},
		{k.Down, services.ActionListNext},
		{k.Complete, services.ActionToggleTaskComplete},
		{k.Increment, services.ActionIncrementPomodoro},
		{k.Decrement, services.ActionDecrementPomodoro},
		{k.SaveTasks, services.ActionSaveTasks},
		{k.Help, services.ActionToggleHelp},
		{k.Quit, services.ActionQuit},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action, true
		}
	}
	return "", false
}
