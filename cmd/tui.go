package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/recipes/internal/query"
	"github.com/desertthunder/recipes/internal/shared"
	"github.com/desertthunder/recipes/internal/tasks"
	"github.com/desertthunder/recipes/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILog = "./tmp/recipes-tui.log"

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	return r.runTUI(ctx, cmd.StringArg("path"))
}

func (r *Runner) runTUI(ctx context.Context, start string) error {
	if r.client == nil {
		return fmt.Errorf("%w: recipes client not initialized", shared.ErrServiceUnavailable)
	}

	logPath := r.config.UI.LogPath
	if logPath == "" {
		logPath = defaultTUILog
	}
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	hits := tasks.NewHitNotifier(r.client, tasks.HitOpts{Rate: r.config.API.HitRate, Logger: r.logger})
	hits.Start(ctx)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		hits.Close(closeCtx)
	}()

	model := ui.NewModel(ctx, ui.Options{
		Client:    r.client,
		Cache:     query.New(query.Options{}),
		Session:   r.session,
		Hits:      hits,
		Logger:    r.logger,
		Start:     start,
		ListCount: r.config.API.ListCount,
		Debounce:  r.config.UI.Debounce(),
		Login: func(ctx context.Context) (string, error) {
			return r.login(ctx, nil)
		},
		Open: r.open,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
