package services

import "github.com/xvierd/pomo-cli/internal/domain"

// Action is one semantic key action of the interactive session. Keys are
// bound to actions by the interface adapter.
type Action string

const (
	// ActionTogglePause starts a paused timer or pauses a running one.
	ActionTogglePause Action = "toggle_pause"

	// ActionResetTimer replaces the timer with a fresh one of the same mode.
	ActionResetTimer Action = "reset_timer"

	// ActionSwitchPomodoro replaces the timer with a fresh Pomodoro timer.
	ActionSwitchPomodoro Action = "switch_pomodoro"

	// ActionSwitchShortBreak replaces the timer with a fresh short break.
	ActionSwitchShortBreak Action = "switch_short_break"

	// ActionSwitchLongBreak replaces the timer with a fresh long break.
	ActionSwitchLongBreak Action = "switch_long_break"

	// ActionToggleStudyMode flips between the normal and zen layouts.
	ActionToggleStudyMode Action = "toggle_study_mode"

	// ActionListPrevious moves the task cursor up.
	ActionListPrevious Action = "list_previous"

	// ActionListNext moves the task cursor down.
	ActionListNext Action = "list_next"

	// ActionToggleTaskComplete flips completion of the selected task.
	ActionToggleTaskComplete Action = "toggle_task_complete"

	// ActionIncrementPomodoro adds a finished pomodoro to the selected task.
	ActionIncrementPomodoro Action = "increment_pomodoro"

	// ActionDecrementPomodoro removes a finished pomodoro from the selected task.
	ActionDecrementPomodoro Action = "decrement_pomodoro"

	// ActionSaveTasks writes the task list to the task store.
	ActionSaveTasks Action = "save_tasks"

	// ActionToggleHelp shows or hides the key help overlay.
	ActionToggleHelp Action = "toggle_help"

	// ActionQuit ends the session.
	ActionQuit Action = "quit"
)

// switchTargets maps the mode-switch actions to their timer mode.
var switchTargets = map[Action]domain.PomodoroMode{
	ActionSwitchPomodoro:   domain.ModePomodoro,
	ActionSwitchShortBreak: domain.ModeShortBreak,
	ActionSwitchLongBreak:  domain.ModeLongBreak,
}
