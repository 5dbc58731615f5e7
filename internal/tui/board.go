// Package tui is the interactive quest board.
package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"questnotes/internal/game"
	"questnotes/internal/ui"
)

// Run shows the board until the player quits, then flushes pending saves.
func Run(ctx context.Context, eng *game.Engine, out io.Writer) error {
	ui.ApplyColorProfile()
	m := newBoardModel(ctx, eng, time.Now)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(out)).Run()
	if ferr := eng.Flush(ctx); err == nil {
		err = ferr
	}
	return err
}
