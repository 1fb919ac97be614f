// Package domain contains the core entities of pomo: the countdown timer,
// tasks, the selectable task list and the aggregate application state.
// It has no knowledge of terminals, files or flags.
package domain

import (
	"errors"
	"fmt"
	"math"
)

// Common domain errors.
var (
	ErrEmptyTaskTitle  = errors.New("task title cannot be empty")
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidDuration = errors.New("invalid duration")
)

// Task is one entry of the task list.
type Task struct {
	Title              string `json:"title" yaml:"title"`
	PomodorosExpected  int    `json:"pomodoros_expected" yaml:"pomodoros_expected"`
	PomodorosCompleted int    `json:"pomodoros_completed" yaml:"pomodoros_completed"`
	Completed          bool   `json:"completed" yaml:"completed"`
}

// NewTask creates an open task with the given title and pomodoro target.
func NewTask(title string, expected int) (Task, error) {
	if title == "" {
		return Task{}, ErrEmptyTaskTitle
	}
	if expected < 0 {
		expected = 0
	}
	return Task{Title: title, PomodorosExpected: expected}, nil
}

// ToggleComplete flips the completed flag.
func (t *Task) ToggleComplete() {
	t.Completed = !t.Completed
}

// CompletePomodoro records one more finished pomodoro.
func (t *Task) CompletePomodoro() {
	t.PomodorosCompleted++
}

// NegatePomodoro removes one finished pomodoro. It does nothing at zero.
func (t *Task) NegatePomodoro() {
	if t.PomodorosCompleted > 0 {
		t.PomodorosCompleted--
	}
}

// AdjustPomodoros adds delta finished pomodoros. The count stays between
// zero and math.MaxInt.
func (t *Task) AdjustPomodoros(delta int) {
	n := t.PomodorosCompleted + delta
	switch {
	case delta > 0 && n < t.PomodorosCompleted:
		n = math.MaxInt
	case n < 0:
		n = 0
	}
	t.PomodorosCompleted = n
}

// ListLine renders the task the way the task list shows it:
// "[x] | 2/4 - title".
func (t Task) ListLine() string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] | %d/%d - %s", mark, t.PomodorosCompleted, t.PomodorosExpected, t.Title)
}

// IndexedTask pairs a task with its 1-based position in the list.
type IndexedTask struct {
	Position int `json:"position" yaml:"position"`
	Task     `yaml:",inline"`
}
