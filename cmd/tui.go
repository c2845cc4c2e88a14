package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nobarhq/nobarctl/internal/guard"
	"github.com/nobarhq/nobarctl/internal/shared"
	"github.com/nobarhq/nobarctl/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/nobarctl-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, ui.ModelOpts{
		Client:     r.client,
		Controller: r.controller,
		Store:      r.store,
		WebURL:     r.config.API.WebURL,
	})
	p := tea.NewProgram(model)

	// The guard watches session transitions for the lifetime of the
	// program, so an expired credential mid-session kicks the user back to
	// the login view.
	nav := guard.NavigatorFunc(func(path string) error {
		p.Send(ui.NavigateMsg{Path: path})
		return nil
	})
	stop := guard.New(r.store, nav, fileLogger).Watch()
	defer stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
