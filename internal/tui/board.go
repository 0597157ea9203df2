package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"xpeak/internal/engine"
)

// RunBoard opens the interactive quest board and blocks until the user quits
// or ctx is canceled.
func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	p := tea.NewProgram(newBoardModel(ctx, svc), tea.WithOutput(out), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}
