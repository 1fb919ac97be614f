// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/services"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// tickMsg is sent when the session's tick budget runs out.
type tickMsg time.Time

// defaultWatermark is shown when Options.Watermark is empty.
const defaultWatermark = "pomo"

// Options configures the model beyond the session itself.
type Options struct {
	Theme     *config.ThemeConfig
	Branch    string
	Watermark string

	// OnTimerFinished runs as a command, off the update loop, when a tick
	// takes the timer to zero.
	OnTimerFinished func(domain.Timer) error
}

// Model draws a services.Session and feeds it key presses and ticks.
type Model struct {
	ctx     context.Context
	session *services.Session
	keys    KeyMap
	help    help.Model
	gauge   progress.Model
	theme   config.ThemeConfig
	branch  string
	mark    string
	width   int
	height  int

	onFinished func(domain.Timer) error

	// err is the error that ended the session, if any.
	err error
}

// NewModel creates a new TUI model.
func NewModel(ctx context.Context, session *services.Session, opts Options) Model {
	theme := resolveTheme(opts.Theme)
	h := help.New()
	h.ShowAll = true
	mark := opts.Watermark
	if mark == "" {
		mark = defaultWatermark
	}
	return Model{
		ctx:        ctx,
		session:    session,
		keys:       DefaultKeyMap(),
		help:       h,
		gauge:      progress.New(progress.WithGradient(theme.GaugeGradientA, theme.GaugeGradientB)),
		theme:      theme,
		branch:     opts.Branch,
		mark:       mark,
		onFinished: opts.OnTimerFinished,
	}
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Init starts the tick chain.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// tickCmd waits out the session's remaining tick budget.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.session.Budget(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// advance lets the session tick. When the tick finished the timer it
// returns a command running the completion hook.
func (m Model) advance() tea.Cmd {
	if !m.session.Advance() {
		return nil
	}
	timer := m.session.State().Timer
	if timer.TimeRemaining != 0 || m.onFinished == nil {
		return nil
	}
	hook := m.onFinished
	return func() tea.Msg {
		if err := hook(timer); err != nil {
			slog.Warn("timer finished hook failed", "mode", timer.Mode, "err", err)
		}
		return nil
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action, ok := m.keys.Action(msg)
		if !ok {
			return m, nil
		}
		quit, err := m.session.Dispatch(m.ctx, action)
		if err != nil {
			m.err = err
		}
		if quit {
			return m, tea.Quit
		}
		return m, m.advance()

	case tickMsg:
		finished := m.advance()
		return m, tea.Batch(m.tickCmd(), finished)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.gauge.Width = max(msg.Width-4, 10)
		m.help.Width = msg.Width
	}
	return m, nil
}

// timerColor returns the colour of the clock for the current timer.
func (m Model) timerColor(timer domain.Timer) lipgloss.Color {
	switch {
	case !timer.IsPlaying():
		return lipgloss.Color(m.theme.ColorPaused)
	case timer.Mode.IsBreak():
		return lipgloss.Color(m.theme.ColorBreak)
	}
	return lipgloss.Color(m.theme.ColorWork)
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := m.session.State()
	if state.ShowHelp {
		return m.viewHelp()
	}

	var sections []string
	if state.StudyMode == domain.StudyZen {
		sections = m.viewZen(state)
	} else {
		sections = m.viewNormal(state)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewHeader(timer domain.Timer) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	header := titleStyle.Render(fmt.Sprintf("%s - Press ? for help", timer.Mode.Label()))

	if !timer.IsPlaying() {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render("Paused")
		header += "  " + pauseBadge
	}
	return header
}

func (m Model) viewNormal(state *domain.AppState) []string {
	timer := state.Timer
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	sections := []string{m.viewHeader(timer), m.viewWatermark()}
	if m.branch != "" {
		sections = append(sections, helpStyle.Render("on "+m.branch))
	}

	sections = append(sections, "")
	sections = append(sections, renderBigClock(timer.Format(), m.timerColor(timer), m.width))
	sections = append(sections, "")
	sections = append(sections, helpStyle.Italic(true).Render("Keep it up, you got this!"))
	sections = append(sections, "")

	used := lipgloss.Height(lipgloss.JoinVertical(lipgloss.Center, sections...))
	rows := m.height - used - taskBoxChrome
	sections = append(sections, m.viewTasks(state.Tasks, rows))
	return sections
}

func (m Model) viewWatermark() string {
	return lipgloss.NewStyle().Faint(true).Render(m.mark)
}

func (m Model) viewZen(state *domain.AppState) []string {
	timer := state.Timer
	return []string{
		m.viewHeader(timer),
		m.viewWatermark(),
		"",
		renderBigClock(timer.Format(), m.timerColor(timer), m.width),
		"",
		m.gauge.ViewAs(float64(timer.Percentage) / 100),
	}
}

// taskBoxChrome is the task box's border and title rows.
const taskBoxChrome = 3

// taskWindow returns the first visible row of a list of n items shown
// rows at a time, scrolled so the selected row is visible.
func taskWindow(n, rows, selected int) int {
	if n <= rows || selected < rows {
		return 0
	}
	return min(selected-rows+1, n-rows)
}

// viewTasks renders the task list inside a bordered box with the cursor
// row highlighted. At most rows tasks are shown, scrolled to keep the
// cursor in view.
func (m Model) viewTasks(tasks *domain.SelectableList[domain.Task], rows int) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.ColorHelp)).
		Padding(0, 1)
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorSelected))

	if tasks.Len() == 0 {
		empty := lipgloss.NewStyle().Faint(true).Render("No tasks")
		return boxStyle.Render("Tasks\n" + empty)
	}

	rows = max(rows, 1)
	selected, hasSel := tasks.Selected()
	start := taskWindow(tasks.Len(), rows, selected)
	end := min(start+rows, tasks.Len())

	title := "Tasks"
	if start > 0 || end < tasks.Len() {
		title = fmt.Sprintf("Tasks %d-%d of %d", start+1, end, tasks.Len())
	}

	// Border, padding and the cursor prefix take six columns.
	lineWidth := max(m.width-6, 10)
	lines := make([]string, 0, end-start+1)
	lines = append(lines, title)
	for i := start; i < end; i++ {
		text := ansi.Truncate(tasks.Items[i].ListLine(), lineWidth, "…")
		line := "  " + text
		if hasSel && i == selected {
			line = selectedStyle.Render("> " + text)
		}
		lines = append(lines, line)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.ColorTitle)).
		Padding(1, 2)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Help"),
		m.help.View(m.keys),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(content))
}
