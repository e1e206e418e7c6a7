package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gogpu/prismal"
)

// Run starts the full-screen preview and blocks until the user quits.
func Run(cfg *prismal.RenderConfig, opts Options) error {
	p := tea.NewProgram(New(cfg, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
