package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/domain"
)

func TestRenderBigClock(t *testing.T) {
	color := lipgloss.Color("#FFFFFF")

	narrow := renderBigClock("25:00", color, 10)
	if !strings.Contains(narrow, "25:00") || strings.Contains(narrow, "\n") {
		t.Errorf("narrow render should be a single line, got %q", narrow)
	}

	wide := renderBigClock("25:00", color, 80)
	if got := len(strings.Split(wide, "\n")); got != glyphHeight {
		t.Errorf("wide render has %d rows, want %d", got, glyphHeight)
	}

	if bigClockWidth("01:00:00") <= bigClockWidth("60:00") {
		t.Error("an hour clock should need more columns than a minute clock")
	}
}

func TestResolveTheme(t *testing.T) {
	defaults := config.DefaultThemeConfig()

	if got := resolveTheme(nil); got != defaults {
		t.Errorf("resolveTheme(nil) = %+v, want defaults", got)
	}

	got := resolveTheme(&config.ThemeConfig{ColorWork: "#123456"})
	if got.ColorWork != "#123456" {
		t.Errorf("ColorWork = %s, want the override", got.ColorWork)
	}
	if got.ColorBreak != defaults.ColorBreak {
		t.Errorf("ColorBreak = %s, want default %s", got.ColorBreak, defaults.ColorBreak)
	}
}

func TestModel_View_Loading(t *testing.T) {
	m, _ := testModel(t, &stubStore{})
	m.width = 0
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q, want Loading...", got)
	}
}

func TestModel_View_Normal(t *testing.T) {
	m, _ := testModel(t, &stubStore{})
	m.branch = "feature/timer"
	view := m.View()

	for _, want := range []string{
		"Pomodoro - Press ? for help",
		"Paused",
		"on feature/timer",
		"Keep it up, you got this!",
		"> [ ] | 0/2 - Write tests",
		"[x] | 1/1 - Fix bug",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("normal view missing %q", want)
		}
	}
}

func TestModel_View_PlayingHidesPausedBadge(t *testing.T) {
	m, _ := testModel(t, &stubStore{})
	m = press(t, m, "space")
	if strings.Contains(m.View(), "Paused") {
		t.Error("a playing timer should not show the Paused badge")
	}
}

func TestModel_View_Zen(t *testing.T) {
	m, now := testModel(t, &stubStore{})
	m = press(t, m, "f", "l", "space")

	*now = now.Add(time.Second)
	result, _ := m.Update(tickMsg(*now))
	m = result.(Model)

	view := m.View()
	if !strings.Contains(view, "Long Break - Press ? for help") {
		t.Error("zen view should keep the header")
	}
	if strings.Contains(view, "Write tests") {
		t.Error("zen view should hide the task list")
	}
	if !strings.Contains(view, "0%") {
		t.Error("zen view should show the gauge percentage")
	}
}

func TestModel_View_EmptyTaskList(t *testing.T) {
	m, _ := testModel(t, &stubStore{})
	m.session.State().Tasks.Items = nil
	if !strings.Contains(m.View(), "No tasks") {
		t.Error("empty list should say so")
	}
}

func TestModel_View_Help(t *testing.T) {
	m, _ := testModel(t, &stubStore{})
	m = press(t, m, "?")
	view := m.View()

	for _, want := range []string{"Help", "save tasks", "zen mode", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("help view missing %q", want)
		}
	}
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := testModel(t, &stubStore{})
	result, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = result.(Model)

	if m.width != 120 || m.height != 30 {
		t.Errorf("size = %dx%d, want 120x30", m.width, m.height)
	}
	if m.gauge.Width != 116 {
		t.Errorf("gauge width = %d, want 116", m.gauge.Width)
	}
}

func TestModel_InitSchedulesTick(t *testing.T) {
	m, _ := testModel(t, &stubStore{})
	if m.Init() == nil {
		t.Error("Init should start the tick chain")
	}
}

func TestModel_View_Watermark(t *testing.T) {
	m, _ := testModel(t, &stubStore{})
	if !strings.Contains(m.View(), defaultWatermark) {
		t.Errorf("normal view missing the default watermark %q", defaultWatermark)
	}

	m.mark = "pomo v1.2.3"
	m = press(t, m, "f")
	if !strings.Contains(m.View(), "pomo v1.2.3") {
		t.Error("zen view missing the watermark")
	}
}

func TestTaskWindow(t *testing.T) {
	tests := []struct {
		n, rows, selected int
		want              int
	}{
		{n: 5, rows: 10, selected: 4, want: 0},
		{n: 20, rows: 5, selected: 0, want: 0},
		{n: 20, rows: 5, selected: 4, want: 0},
		{n: 20, rows: 5, selected: 5, want: 1},
		{n: 20, rows: 5, selected: 19, want: 15},
	}

	for _, tt := range tests {
		if got := taskWindow(tt.n, tt.rows, tt.selected); got != tt.want {
			t.Errorf("taskWindow(%d, %d, %d) = %d, want %d", tt.n, tt.rows, tt.selected, got, tt.want)
		}
	}
}

func TestModel_View_LongTaskListKeepsCursorVisible(t *testing.T) {
	m, _ := testModel(t, &stubStore{})
	m.height = 30

	tasks := make([]domain.Task, 60)
	for i := range tasks {
		tasks[i] = domain.Task{Title: fmt.Sprintf("task-%02d", i), PomodorosExpected: 1}
	}
	m.session.State().Tasks.Items = tasks

	keys := make([]string, 59)
	for i := range keys {
		keys[i] = "j"
	}
	m = press(t, m, keys...)

	view := m.View()
	if lines := strings.Count(view, "\n") + 1; lines > m.height {
		t.Errorf("view has %d lines, want at most %d", lines, m.height)
	}
	if !strings.Contains(view, "> [ ] | 0/1 - task-59") {
		t.Error("the selected last task should be visible")
	}
	if strings.Contains(view, "task-00") {
		t.Error("the top of the list should have scrolled away")
	}
	if !strings.Contains(view, "of 60") {
		t.Error("a scrolled list should say which rows it shows")
	}
}

func TestModel_View_TruncatesLongTitles(t *testing.T) {
	m, _ := testModel(t, &stubStore{})
	m.width = 40
	m.session.State().Tasks.Items = []domain.Task{{Title: strings.Repeat("long ", 30)}}

	for _, line := range strings.Split(m.View(), "\n") {
		if w := lipgloss.Width(line); w > m.width {
			t.Fatalf("line is %d columns wide, want at most %d: %q", w, m.width, line)
		}
	}
}

func TestModel_TimerFinishedRunsAsCommand(t *testing.T) {
	m, now := testModel(t, &stubStore{})

	var finished []domain.Timer
	m.onFinished = func(timer domain.Timer) error {
		finished = append(finished, timer)
		return errors.New("no notification daemon")
	}
	m.session.State().Timer = domain.NewTimer(time.Second, domain.ModeShortBreak)
	m = press(t, m, "space")

	*now = now.Add(time.Second)
	result, cmd := m.Update(tickMsg(*now))
	m = result.(Model)

	if len(finished) != 0 {
		t.Fatal("the completion hook must not run inside Update")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok || len(batch) != 2 {
		t.Fatalf("tick should batch the next tick with the completion hook, got %T", cmd())
	}
	if msg := batch[1](); msg != nil {
		t.Errorf("completion hook returned %v, want nil", msg)
	}
	if len(finished) != 1 || finished[0].Mode != domain.ModeShortBreak {
		t.Errorf("finished = %+v, want one short break", finished)
	}

	*now = now.Add(time.Second)
	if _, cmd := m.Update(keyPress("j")); cmd != nil {
		t.Error("a finished timer should not report completion again")
	}
}
