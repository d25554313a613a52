package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/listmerge/internal/repositories"
	"github.com/desertthunder/listmerge/internal/shared"
	"github.com/desertthunder/listmerge/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILog = "./tmp/listmerge-tui.log"

// TUI launches the interactive terminal UI for merging lists.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	policy, err := r.policy(cmd.String("policy"))
	if err != nil {
		return err
	}

	source := r.listSource(sourceOverrides{
		file:    cmd.String("file"),
		url:     cmd.String("url"),
		noDelay: cmd.Bool("no-delay"),
	})

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.Log.File
	if logPath == "" {
		logPath = defaultTUILog
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	var journal ui.Journal
	if r.config.Database.Enabled {
		db, err := shared.OpenJournal(r.config.Database)
		if err != nil {
			return fmt.Errorf("failed to open merge journal: %w", err)
		}
		defer db.Close()
		journal = repositories.NewJournalAdapter(repositories.NewMergeRepository(db))
	}

	r.logger.Info("starting TUI", "source", source.Name(), "policy", policy, "journal", journal != nil)

	model := ui.NewModel(ctx, source, ui.Options{Policy: policy, Journal: journal, Logger: r.logger})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
