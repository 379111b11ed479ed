package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/engine"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/i18n"
)

func RunBoard(ctx context.Context, svc *engine.Service, bundle *i18n.Bundle, out io.Writer) error {
	m := newBoardModel(ctx, svc, bundle, time.Now)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
