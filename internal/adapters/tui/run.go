package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/pomo-cli/internal/services"
)

// Run drives session in the alternate screen until the user quits or ctx is
// cancelled. The terminal is restored before Run returns, so an error that
// ended the session can be printed right away.
func Run(ctx context.Context, session *services.Session, opts Options) error {
	program := tea.NewProgram(
		NewModel(ctx, session, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
