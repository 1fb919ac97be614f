package domain

// AppState is everything the interactive session owns: one timer, the task
// list, the study mode and the help overlay flag.
type AppState struct {
	Timer     Timer
	Tasks     *SelectableList[Task]
	StudyMode StudyMode
	ShowHelp  bool
}

// NewAppState builds the initial state: a paused Pomodoro timer and the task
// list with its cursor on the first task.
func NewAppState(durations Durations, tasks []Task, mode StudyMode) *AppState {
	list := NewSelectableList(tasks)
	list.Next()
	return &AppState{
		Timer:     NewTimer(durations.Pomodoro, ModePomodoro),
		Tasks:     list,
		StudyMode: mode,
	}
}

// TaskSnapshot returns a copy of the task slice safe to hand to a store.
func (s *AppState) TaskSnapshot() []Task {
	out := make([]Task, len(s.Tasks.Items))
	copy(out, s.Tasks.Items)
	return out
}
